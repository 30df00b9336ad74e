// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

// Death causes, the most likely attack that would take a password down.
const (
	CauseDictionary         = "dictionary attack"
	CauseCredentialStuffing = "credential stuffing"
	CausePatternAttack      = "pattern-based attack"
	CauseBruteForce         = "brute force"
	CauseSocialEngineering  = "social engineering"
)

// heavilyBreached is the breach count above which stuffing beats every structural weakness.
const heavilyBreached = 1000

type deathRule struct {
	matches func(c Characteristics, breaches int) bool
	cause   string
}

// deathRules are evaluated in order, the first match wins.
var deathRules = []deathRule{
	{
		matches: func(c Characteristics, _ int) bool { return c.IsCommon },
		cause:   CauseDictionary,
	},
	{
		matches: func(_ Characteristics, breaches int) bool { return breaches > heavilyBreached },
		cause:   CauseCredentialStuffing,
	},
	{
		matches: func(c Characteristics, _ int) bool {
			return (c.HasKeyboardPattern || c.HasSequentialNumbers) && !c.HasSymbols
		},
		cause: CausePatternAttack,
	},
	{
		matches: func(c Characteristics, _ int) bool { return c.Length <= 6 },
		cause:   CauseBruteForce,
	},
	{
		matches: func(c Characteristics, _ int) bool {
			return c.Length <= 8 && !c.HasSymbols && !c.HasUppercase
		},
		cause: CauseBruteForce,
	},
	{
		matches: func(_ Characteristics, breaches int) bool { return breaches > 0 },
		cause:   CauseCredentialStuffing,
	},
}

// ClassifyDeathCause picks the death cause for the analysed password. breachCount is the number of
// times the password showed up in known breaches, 0 when unknown.
func ClassifyDeathCause(c Characteristics, breachCount int) string {
	for _, rule := range deathRules {
		if rule.matches(c, breachCount) {
			return rule.cause
		}
	}
	return CauseSocialEngineering
}
