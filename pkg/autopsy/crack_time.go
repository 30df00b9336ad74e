// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package autopsy

import (
	"fmt"
	"math"
)

// GuessesPerSecond is the offline attacker speed assumed by the brute-force estimate.
const GuessesPerSecond = 10_000_000_000

const (
	CrackInstantly        = "instantly (common password)"
	CrackUnderASecond     = "less than a second"
	CrackMillionsOfYears  = "millions of years"
	secondsPerMinute      = 60
	secondsPerHour        = 60 * secondsPerMinute
	secondsPerDay         = 24 * secondsPerHour
	secondsPerYear        = 365 * secondsPerDay
	yearsPerThousandYears = 1000
)

// charsetSize is the alphabet a brute-force attacker has to cover for the classes present. Never zero.
func charsetSize(c Characteristics) int {
	size := 0
	if c.HasLowercase {
		size += 26
	}
	if c.HasUppercase {
		size += 26
	}
	if c.HasNumbers {
		size += 10
	}
	if c.HasSymbols {
		size += 33
	}
	if size == 0 {
		size = 26
	}
	return size
}

// CrackSeconds is how long exhausting the whole keyspace takes at GuessesPerSecond.
func CrackSeconds(c Characteristics) float64 {
	combinations := math.Pow(float64(charsetSize(c)), float64(c.Length))
	return combinations / GuessesPerSecond
}

// EstimateCrackTime buckets the brute-force time into a human readable label. Common passwords are
// reported as cracked instantly whatever the keyspace.
func EstimateCrackTime(c Characteristics) string {
	if c.IsCommon {
		return CrackInstantly
	}
	return formatCrackSeconds(CrackSeconds(c))
}

func formatCrackSeconds(seconds float64) string {
	years := seconds / secondsPerYear
	switch {
	case seconds < 1:
		return CrackUnderASecond
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%d seconds", ceil(seconds))
	case seconds < secondsPerHour:
		return fmt.Sprintf("%d minutes", ceil(seconds/secondsPerMinute))
	case seconds < secondsPerDay:
		return fmt.Sprintf("%d hours", ceil(seconds/secondsPerHour))
	case seconds < secondsPerYear:
		return fmt.Sprintf("%d days", ceil(seconds/secondsPerDay))
	case years < 1000:
		return fmt.Sprintf("%d years", ceil(years))
	case years < 1_000_000:
		return fmt.Sprintf("%d thousand years", ceil(years/yearsPerThousandYears))
	default:
		return CrackMillionsOfYears
	}
}

func ceil(v float64) int64 {
	return int64(math.Ceil(v))
}
