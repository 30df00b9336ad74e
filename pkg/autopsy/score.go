// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

const (
	maxScore = 100
	minScore = 0
)

// Score composes the 0-100 strength score out of the length, the character classes and the weaknesses
// already recorded in c. Weights are additive and the sum is clamped.
func Score(c Characteristics) int {
	score := c.Length * 4
	if score > 40 {
		score = 40
	}

	cls := classes{upper: c.HasUppercase, lower: c.HasLowercase, digit: c.HasNumbers, symbol: c.HasSymbols}
	if cls.lower {
		score += 5
	}
	if cls.upper {
		score += 10
	}
	if cls.digit {
		score += 10
	}
	if cls.symbol {
		score += 15
	}

	if c.IsCommon {
		score -= 40
	}
	if c.HasKeyboardPattern {
		score -= 15
	}
	if c.HasRepeatingChars {
		score -= 10
	}
	if c.HasSequentialNumbers {
		score -= 10
	}
	if c.Length < 6 {
		score -= 20
	}

	variety := cls.count()
	if variety >= 3 {
		score += 10
	}
	if variety == 4 {
		score += 10
	}

	return clamp(score, minScore, maxScore)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
