// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

// Analyze runs the lexicon matcher and the structural detectors on the password, then composes the
// score, the crack time estimate and the death cause out of what they found. It never fails: any string,
// the empty one included, gets a well formed result.
//
// No breach count is folded in here, use Characteristics.WithBreachCount once one is known.
func Analyze(password string) Characteristics {
	runes := []rune(password)
	cls := classesOf(runes)
	d := detect(password)

	c := Characteristics{
		Length:               len(runes),
		HasUppercase:         cls.upper,
		HasLowercase:         cls.lower,
		HasNumbers:           cls.digit,
		HasSymbols:           cls.symbol,
		IsCommon:             d.common || d.leetCommon,
		HasKeyboardPattern:   d.keyboard,
		HasRepeatingChars:    d.repeating,
		HasSequentialNumbers: d.sequential,
	}

	c.Patterns = patternTags(password, c.Length, d)
	c.StrengthScore = Score(c)
	c.EstimatedCrackTime = EstimateCrackTime(c)
	c.DeathCause = ClassifyDeathCause(c, 0)
	return c
}
