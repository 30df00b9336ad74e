// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

import (
	_ "embed"
	"strings"
)

//go:embed data/weak_passwords.txt
var weakPasswordsData string

// lexicon is the set of well known weak passwords, lower-cased. Filled once at init and only read afterwards.
var lexicon = loadLexicon(weakPasswordsData)

// leetMap maps the common leet-speak stand-ins back to the letters they replace.
var leetMap = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'@': 'a',
	'!': 'i',
}

func loadLexicon(data string) map[string]struct{} {
	lines := strings.Split(data, "\n")
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

func inLexicon(word string) bool {
	_, ok := lexicon[word]
	return ok
}

// deleet replaces leet-speak characters with their letters and lower-cases the result.
func deleet(password string) string {
	var b strings.Builder
	b.Grow(len(password))
	for _, r := range password {
		if letter, ok := leetMap[r]; ok {
			b.WriteRune(letter)
		} else {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// lexiconMatch reports whether the password is a weak password as typed (plain) or once de-leeted (leet).
// leet is only true when the de-leeted form differs from the plain one and plain did not match.
func lexiconMatch(password string) (plain bool, leet bool) {
	lower := strings.ToLower(password)
	plain = inLexicon(lower)
	if plain {
		return true, false
	}

	normalized := deleet(password)
	leet = normalized != lower && inLexicon(normalized)
	return plain, leet
}

// IsCommon reports whether the password, directly or de-leeted, is a well known weak password.
func IsCommon(password string) bool {
	plain, leet := lexiconMatch(password)
	return plain || leet
}
