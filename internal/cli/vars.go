// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// analyze
	interactive bool
	// analyze
	checkBreaches bool
	// analyze
	threads int
	// analyze
	format string
	// analyze
	noColor bool
	// analyze, serve
	hibpURL string
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
	// serve
	serveBreaches bool
)
