// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

import (
	"reflect"
	"testing"
)

func TestHasKeyboardPattern(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"myQWERTYpass", true},
		{"asdf", true},
		{"x1234x", true},
		{"a!@#$%b", true},
		{"ZXCVbn", true},
		{"qwe", false},
		{"abc", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := HasKeyboardPattern(tc.password); got != tc.want {
			t.Errorf("HasKeyboardPattern(%q): %v, want: %v", tc.password, got, tc.want)
		}
	}
}

func TestHasRepeatingChars(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"aaa", true},
		{"abbbc", true},
		{"111", true},
		{"x!!!!", true},
		{"aAa", false},
		{"aa", false},
		{"aabb", false},
		{"a\n\n\nb", false},
		{"\xff\xfe\xfd", false},
		{"a\xff\xffb", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := HasRepeatingChars(tc.password); got != tc.want {
			t.Errorf("HasRepeatingChars(%q): %v, want: %v", tc.password, got, tc.want)
		}
	}
}

func TestHasSequentialNumbers(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"123", true},
		{"321", true},
		{"x789y", true},
		{"pass4567", true},
		{"111", false},
		{"135", false},
		{"901", false},
		{"a1b2c3", false},
		{"12", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := HasSequentialNumbers(tc.password); got != tc.want {
			t.Errorf("HasSequentialNumbers(%q): %v, want: %v", tc.password, got, tc.want)
		}
	}
}

func TestPatternTags(t *testing.T) {
	cases := []struct {
		password string
		want     []string
	}{
		{"password", []string{TagCommon, TagOnlyLetters}},
		{"p@ssw0rd", []string{TagLeetCommon}},
		{"aaa111", []string{TagRepeating, TagVeryShort, TagWordShortNumber}},
		{"Michael1987", []string{TagSequential, TagNameNumbers, TagYear}},
		{"123456", []string{TagCommon, TagKeyboard, TagSequential, TagOnlyDigits, TagVeryShort}},
		{"abc", []string{TagOnlyLetters, TagExtremelyShort}},
		{"P4ssw0rd!2024", []string{TagYear}},
		{"", []string{TagExtremelyShort}},
		{"Tr0ub4dor&3", []string{}},
		{"x1949x", []string{TagVeryShort}},
		{"x1950x", []string{TagVeryShort, TagYear}},
		{"x2029x", []string{TagVeryShort, TagYear}},
		{"x2030x", []string{TagVeryShort}},
		{"abc1234", []string{TagKeyboard, TagSequential, TagWordShortNumber}},
		{"abc12345", []string{TagKeyboard, TagSequential}},
		{"Michael1", []string{TagNameNumbers}},
		{"MIchael1", []string{}},
	}

	for _, tc := range cases {
		got := Analyze(tc.password).Patterns
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Patterns(%q): %q, want: %q", tc.password, got, tc.want)
		}
	}
}

func TestPatternTags_ShortTiersExclusive(t *testing.T) {
	for _, password := range []string{"", "a", "abcd", "abcde", "abcdef", "abcdefg"} {
		tiers := 0
		for _, tag := range Analyze(password).Patterns {
			if tag == TagExtremelyShort || tag == TagVeryShort {
				tiers++
			}
			if tag == "" {
				t.Errorf("Patterns(%q) should not contain empty tags", password)
			}
		}
		if tiers > 1 {
			t.Errorf("Patterns(%q) should have at most one length tier, has %d", password, tiers)
		}
	}
}
