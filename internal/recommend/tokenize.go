// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped from text features.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are as at
		be because been before being below between both but by
		can could did do does doing down during each few for from further
		had has have having he her here hers herself him himself his how
		if in into is it its itself just me more most my myself
		no nor not now of off on once only or other our ours ourselves out over own
		same she should so some such than that the their theirs them themselves then
		there these they this those through to too under until up upon us
		very was we were what when where which while who whom why will with would
		you your yours yourself yourselves
		one two new first however must may might get gets got
	`) {
		stopWords[w] = struct{}{}
	}
}

// fold applies NFKC normalization and Unicode case folding. cases.Caser is
// stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// tokenize splits text into folded word tokens, dropping stop words and
// tokens shorter than minLen runes.
func tokenize(text string, minLen int) []string {
	if text == "" {
		return nil
	}
	words := strings.FieldsFunc(fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) < minLen {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// phraseToken returns a single token for a whole field value, so that
// "Romantic Comedy" contributes more than the separate words it shares with
// "Black Comedy".
func phraseToken(prefix, value string) string {
	v := strings.Join(strings.Fields(fold(value)), " ")
	if v == "" {
		return ""
	}
	return prefix + ":" + v
}

// normalizeTitle folds case and width and collapses whitespace. Two titles
// are an exact match when their normalized forms are equal.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(fold(s)), " ")
}

// processTitle is normalizeTitle with punctuation replaced by spaces, the
// form used for fuzzy comparison.
func processTitle(s string) string {
	return strings.Join(strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}), " ")
}
