// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package autopsy scores a password locally and explains how it would most likely die.
//
// Everything here is pure: Analyze and AnalyzeDNA allocate a fresh result on every call, read only
// package level tables that are never written after init, and are safe for concurrent use.
package autopsy
