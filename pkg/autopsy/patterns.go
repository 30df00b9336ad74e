// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Pattern tags, in the order they are reported.
const (
	TagCommon          = "common password"
	TagLeetCommon      = "leet-speak common password"
	TagKeyboard        = "keyboard pattern"
	TagRepeating       = "repeating characters"
	TagSequential      = "sequential numbers"
	TagOnlyDigits      = "only digits"
	TagOnlyLetters     = "only letters"
	TagExtremelyShort  = "extremely short"
	TagVeryShort       = "very short"
	TagNameNumbers     = "name followed by numbers"
	TagWordShortNumber = "word followed by short number"
	TagYear            = "contains a year"
)

// keyboardPatterns are matched as plain substrings of the lower-cased password.
var keyboardPatterns = []string{
	"qwerty",
	"qwertz",
	"azerty",
	"asdf",
	"zxcv",
	"qazwsx",
	"1qaz",
	"2wsx",
	"zaq1",
	"poiuy",
	"lkjh",
	"mnbv",
	"1234",
	"4321",
	"0987",
	"!@#$%",
}

// keyboardRows drive the per character window check of the DNA segmenter.
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
}

var (
	onlyDigitsRe      = regexp.MustCompile(`^[0-9]+$`)
	onlyLettersRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	nameNumbersRe     = regexp.MustCompile(`^[A-Z][a-z]+[0-9]+$`)
	wordShortNumberRe = regexp.MustCompile(`^[a-z]+[0-9]{1,4}$`)
	yearRe            = regexp.MustCompile(`(19[5-9][0-9]|20[0-2][0-9])`)
)

// HasKeyboardPattern reports whether the lower-cased password contains one of the known keyboard runs.
func HasKeyboardPattern(password string) bool {
	lower := strings.ToLower(password)
	for _, p := range keyboardPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// HasRepeatingChars reports whether any character appears 3 or more times in a row. Case matters.
func HasRepeatingChars(password string) bool {
	runes := []rune(password)
	for i := 2; i < len(runes); i++ {
		if isRepeatRun(runes[i-2], runes[i-1], runes[i]) {
			return true
		}
	}
	return false
}

// HasSequentialNumbers reports whether any 3 consecutive characters are digits counting up or down by one.
func HasSequentialNumbers(password string) bool {
	runes := []rune(password)
	for i := 2; i < len(runes); i++ {
		if isDigitRun(runes[i-2], runes[i-1], runes[i]) {
			return true
		}
	}
	return false
}

// isRepeatRun mirrors `(.)\1{2,}` where the dot never matches a line terminator.
func isRepeatRun(a, b, c rune) bool {
	if a == '\n' || a == '\r' || a == '\u2028' || a == '\u2029' {
		return false
	}
	return sameChar(a, b) && sameChar(b, c)
}

// sameChar compares decoded characters. utf8.RuneError stands in for any invalid byte, so it never
// equals anything, a literal U+FFFD included.
func sameChar(a, b rune) bool {
	return a == b && a != utf8.RuneError
}

func isDigitRun(a, b, c rune) bool {
	if !isDigit(a) || !isDigit(b) || !isDigit(c) {
		return false
	}
	x, y, z := int(a-'0'), int(b-'0'), int(c-'0')
	return (y == x+1 && z == y+1) || (y == x-1 && z == y-1)
}

// detection is what the structural detector and the lexicon matcher found in a password.
type detection struct {
	common     bool
	leetCommon bool
	keyboard   bool
	repeating  bool
	sequential bool
}

func detect(password string) detection {
	plain, leet := lexiconMatch(password)
	return detection{
		common:     plain,
		leetCommon: leet,
		keyboard:   HasKeyboardPattern(password),
		repeating:  HasRepeatingChars(password),
		sequential: HasSequentialNumbers(password),
	}
}

// patternTags lists the tags of every detector that fired, in display order.
func patternTags(password string, length int, d detection) []string {
	tags := make([]string, 0, 8)
	add := func(ok bool, tag string) {
		if ok {
			tags = append(tags, tag)
		}
	}

	add(d.common, TagCommon)
	add(d.leetCommon, TagLeetCommon)
	add(d.keyboard, TagKeyboard)
	add(d.repeating, TagRepeating)
	add(d.sequential, TagSequential)
	add(onlyDigitsRe.MatchString(password), TagOnlyDigits)
	add(onlyLettersRe.MatchString(password), TagOnlyLetters)

	switch {
	case length <= 4:
		tags = append(tags, TagExtremelyShort)
	case length <= 6:
		tags = append(tags, TagVeryShort)
	}

	add(nameNumbersRe.MatchString(password), TagNameNumbers)
	add(wordShortNumberRe.MatchString(password), TagWordShortNumber)
	add(yearRe.MatchString(password), TagYear)

	return tags
}
