// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

// Characteristics is the result of a full analysis of a password.
type Characteristics struct {
	Length               int      `json:"length" yaml:"length"`
	HasUppercase         bool     `json:"hasUppercase" yaml:"hasUppercase"`
	HasLowercase         bool     `json:"hasLowercase" yaml:"hasLowercase"`
	HasNumbers           bool     `json:"hasNumbers" yaml:"hasNumbers"`
	HasSymbols           bool     `json:"hasSymbols" yaml:"hasSymbols"`
	IsCommon             bool     `json:"isCommon" yaml:"isCommon"`
	HasKeyboardPattern   bool     `json:"hasKeyboardPattern" yaml:"hasKeyboardPattern"`
	HasRepeatingChars    bool     `json:"hasRepeatingChars" yaml:"hasRepeatingChars"`
	HasSequentialNumbers bool     `json:"hasSequentialNumbers" yaml:"hasSequentialNumbers"`
	EstimatedCrackTime   string   `json:"estimatedCrackTime" yaml:"estimatedCrackTime"`
	StrengthScore        int      `json:"strengthScore" yaml:"strengthScore"`
	DeathCause           string   `json:"deathCause" yaml:"deathCause"`
	Patterns             []string `json:"patterns" yaml:"patterns"`
}

// WithBreachCount returns a copy of c with the death cause reclassified using the number of times the
// password was seen in breaches. c itself is left untouched.
func (c Characteristics) WithBreachCount(count int) Characteristics {
	out := c
	out.Patterns = append([]string(nil), c.Patterns...)
	out.DeathCause = ClassifyDeathCause(c, count)
	return out
}

// Segment is the weakness annotation of a single character.
type Segment struct {
	// Char is the character itself, or MaskChar for masked interior positions.
	Char     string `json:"char" yaml:"char"`
	Strength int    `json:"strength" yaml:"strength"`
	Reason   string `json:"reason" yaml:"reason"`
}

// classes holds the character classes present in a password.
type classes struct {
	upper, lower, digit, symbol bool
}

func (c classes) count() int {
	n := 0
	for _, present := range []bool{c.upper, c.lower, c.digit, c.symbol} {
		if present {
			n++
		}
	}
	return n
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
func isSymbol(r rune) bool { return !isLetter(r) && !isDigit(r) }

func classesOf(runes []rune) classes {
	var c classes
	for _, r := range runes {
		switch {
		case isUpper(r):
			c.upper = true
		case isLower(r):
			c.lower = true
		case isDigit(r):
			c.digit = true
		default:
			c.symbol = true
		}
	}
	return c
}
