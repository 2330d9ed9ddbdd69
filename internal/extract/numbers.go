package extract

import (
	"strconv"
	"strings"
)

var unitWords = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var magnitudeWords = map[string]float64{
	"hundred":  100,
	"thousand": 1e3,
	"million":  1e6,
	"billion":  1e9,
}

// parseNumberWords converts spelled-out English magnitudes to a number by
// accumulation: unit words add into a buffer, "hundred" multiplies the
// buffer, and thousand-or-larger multipliers flush the buffer into the
// running total. "five hundred million" -> 500,000,000 and
// "one hundred fifty three million" -> 153,000,000. Unknown words are
// skipped so phrases like "FIVE HUNDRED MILLION DOLLARS" still parse.
func parseNumberWords(s string) (float64, bool) {
	var total, current float64
	matched := false

	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ",.-")
		if w == "and" {
			continue
		}
		if v, ok := unitWords[w]; ok {
			current += v
			matched = true
			continue
		}
		m, ok := magnitudeWords[w]
		if !ok {
			continue
		}
		matched = true
		if current == 0 {
			current = 1
		}
		if m == 100 {
			current *= m
			continue
		}
		total += current * m
		current = 0
	}

	if !matched {
		return 0, false
	}
	return total + current, true
}

// parseNumber parses a comma-grouped decimal string such as "500,000,000".
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// suffixMultiplier maps a magnitude suffix ("million", "m", "bn", ...) to its
// multiplier. Returns 1 for an unrecognized or empty suffix.
func suffixMultiplier(suffix string) float64 {
	switch strings.ToLower(strings.TrimSpace(suffix)) {
	case "million", "mm", "m":
		return 1e6
	case "billion", "bn", "b":
		return 1e9
	case "thousand", "k":
		return 1e3
	default:
		return 1
	}
}
