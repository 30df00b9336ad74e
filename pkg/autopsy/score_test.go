// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"abc", 0},
		{"password", 0},
		{"aaa111", 29},
		{"Michael1987", 65},
		{"xK9#", 56},
		{"P4ssw0rd!2024", 100},
		{"Tr0ub4dor&3", 100},
	}

	for _, tc := range cases {
		if got := Score(Analyze(tc.password)); got != tc.want {
			t.Errorf("Score(%q): %d, want: %d", tc.password, got, tc.want)
		}
	}
}

func TestScore_Weights(t *testing.T) {
	cases := []struct {
		name string
		c    Characteristics
		want int
	}{
		{"length capped at 40", Characteristics{Length: 30}, 40},
		{"lowercase", Characteristics{Length: 10, HasLowercase: true}, 45},
		{"uppercase", Characteristics{Length: 10, HasUppercase: true}, 50},
		{"digits", Characteristics{Length: 10, HasNumbers: true}, 50},
		{"symbols", Characteristics{Length: 10, HasSymbols: true}, 55},
		{"three classes bonus", Characteristics{Length: 10, HasLowercase: true, HasUppercase: true, HasNumbers: true}, 75},
		{"keyboard penalty", Characteristics{Length: 10, HasLowercase: true, HasKeyboardPattern: true}, 30},
		{"repeat and sequence", Characteristics{Length: 10, HasNumbers: true, HasRepeatingChars: true, HasSequentialNumbers: true}, 30},
		{"short penalty", Characteristics{Length: 5, HasSymbols: true}, 15},
		{"floors at zero", Characteristics{Length: 2, IsCommon: true, HasKeyboardPattern: true}, 0},
	}

	for _, tc := range cases {
		if got := Score(tc.c); got != tc.want {
			t.Errorf("Score(%s): %d, want: %d", tc.name, got, tc.want)
		}
	}
}

func TestScore_Bounds(t *testing.T) {
	inputs := []string{"", "a", "!!!!!!", "123456", "aA1!aA1!aA1!aA1!aA1!aA1!aA1!aA1!", "ñandú", "日本語のパスワード"}
	for _, password := range inputs {
		score := Analyze(password).StrengthScore
		if score < 0 || score > 100 {
			t.Errorf("Analyze(%q).StrengthScore: %d, should be within [0, 100]", password, score)
		}
	}
}
