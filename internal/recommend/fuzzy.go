// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Fuzzy title scoring on a 0-100 scale. Inputs are processed titles
// (folded, punctuation stripped, single spaces).

// ratio is 100 * (1 - editDistance / longerLength), over runes.
func ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	longest := max(la, lb)
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(longest))
}

// partialRatio is the best ratio of the shorter string against every
// same-length window of the longer one.
func partialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		if len(rb) == 0 {
			return 100
		}
		return 0
	}
	short := string(ra)
	best := 0.0
	for start := 0; start+len(ra) <= len(rb); start++ {
		r := ratio(short, string(rb[start:start+len(ra)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func sortedTokens(s string) []string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return tokens
}

// tokenSortRatio compares the strings with their words sorted.
func tokenSortRatio(a, b string, scorer func(string, string) float64) float64 {
	return scorer(strings.Join(sortedTokens(a), " "), strings.Join(sortedTokens(b), " "))
}

// tokenSetRatio compares the shared words against each side's shared words
// plus its remainder, taking the best of the three pairings.
func tokenSetRatio(a, b string, scorer func(string, string) float64) float64 {
	setA := uniqueSorted(sortedTokens(a))
	setB := uniqueSorted(sortedTokens(b))

	inB := make(map[string]struct{}, len(setB))
	for _, t := range setB {
		inB[t] = struct{}{}
	}
	inA := make(map[string]struct{}, len(setA))
	for _, t := range setA {
		inA[t] = struct{}{}
	}

	var common, onlyA, onlyB []string
	for _, t := range setA {
		if _, ok := inB[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range setB {
		if _, ok := inA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := scorer(withA, withB)
	if base != "" {
		best = math.Max(best, scorer(base, withA))
		best = math.Max(best, scorer(base, withB))
	}
	return best
}

func uniqueSorted(tokens []string) []string {
	out := tokens[:0]
	for i, t := range tokens {
		if i == 0 || t != tokens[i-1] {
			out = append(out, t)
		}
	}
	return out
}

// weightedRatio takes the best of the whole-string, word-order and word-set
// scores, switching to substring scoring when one title is at least 1.5x
// longer than the other. The result is rounded to an integer.
func weightedRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	best := ratio(a, b)
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	lengthRatio := float64(max(la, lb)) / float64(min(la, lb))

	if lengthRatio < 1.5 {
		best = math.Max(best, tokenSortRatio(a, b, ratio)*0.95)
		best = math.Max(best, tokenSetRatio(a, b, ratio)*0.95)
		return int(math.Round(best))
	}

	partialScale := 0.9
	if lengthRatio >= 8 {
		partialScale = 0.6
	}
	best = math.Max(best, partialRatio(a, b)*partialScale)
	best = math.Max(best, tokenSortRatio(a, b, partialRatio)*0.95*partialScale)
	best = math.Max(best, tokenSetRatio(a, b, partialRatio)*0.95*partialScale)
	return int(math.Round(best))
}
