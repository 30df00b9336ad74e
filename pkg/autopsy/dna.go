// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

import "strings"

// MaskChar replaces interior characters of longer passwords in Segment.Char.
const MaskChar = "•"

const (
	ReasonAcceptable       = "acceptable character"
	ReasonKeyboard         = "keyboard pattern sequence"
	ReasonReversedKeyboard = "reversed keyboard pattern"
	ReasonSequential       = "sequential number run"
	ReasonRepeating        = "repeating character"
	ReasonRepeated         = "repeated character"
	ReasonSymbol           = "special character — excellent"
	ReasonMixedCase        = "mixed case — strong"
	ReasonDigitWithLetters = "number mixed with letters"
	ReasonLowercaseOnly    = "lowercase letter only"
	ReasonDigitOnly        = "digit only"
)

// Segment strengths.
const (
	StrengthWeakest = 0
	StrengthWeak    = 1
	StrengthFair    = 2
	StrengthStrong  = 3
)

// AnalyzeDNA annotates every character of the password with how much it adds to the strength, 0 to 3.
// The result always has one segment per character.
func AnalyzeDNA(password string) []Segment {
	runes := []rune(password)
	hasLower, hasLetter := false, false
	for _, r := range runes {
		hasLower = hasLower || isLower(r)
		hasLetter = hasLetter || isLetter(r)
	}

	segments := make([]Segment, len(runes))
	for i := range runes {
		strength, reason := classifyChar(runes, i, hasLower, hasLetter)
		segments[i] = Segment{
			Char:     displayChar(runes, i),
			Strength: strength,
			Reason:   reason,
		}
	}
	return segments
}

// classifyChar runs the window checks on position i. Later checks override earlier ones.
func classifyChar(runes []rune, i int, hasLower, hasLetter bool) (int, string) {
	strength, reason := StrengthFair, ReasonAcceptable

	if i >= 2 {
		window := strings.ToLower(string(runes[i-2 : i+1]))
		reversed := reverse(window)
		for _, row := range keyboardRows {
			if strings.Contains(row, window) {
				strength, reason = StrengthWeakest, ReasonKeyboard
			} else if strings.Contains(row, reversed) {
				strength, reason = StrengthWeakest, ReasonReversedKeyboard
			}
		}

		if isDigitRun(runes[i-2], runes[i-1], runes[i]) {
			strength, reason = StrengthWeakest, ReasonSequential
		}
	}

	switch {
	case i >= 2 && sameChar(runes[i], runes[i-1]) && sameChar(runes[i-1], runes[i-2]):
		strength, reason = StrengthWeakest, ReasonRepeating
	case i >= 1 && sameChar(runes[i], runes[i-1]) && strength > StrengthWeakest:
		if strength > StrengthWeak {
			strength = StrengthWeak
		}
		reason = ReasonRepeated
	}

	if strength < StrengthFair {
		return strength, reason
	}

	r := runes[i]
	switch {
	case isSymbol(r):
		return StrengthStrong, ReasonSymbol
	case isUpper(r) && hasLower:
		return StrengthStrong, ReasonMixedCase
	case isDigit(r) && hasLetter:
		return StrengthFair, ReasonDigitWithLetters
	case isLower(r):
		return StrengthWeak, ReasonLowercaseOnly
	case isDigit(r):
		return StrengthWeak, ReasonDigitOnly
	}
	return strength, reason
}

func displayChar(runes []rune, i int) string {
	n := len(runes)
	if i < 2 || i >= n-2 || n <= 5 {
		return string(runes[i])
	}
	return MaskChar
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
