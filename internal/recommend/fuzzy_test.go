// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"goblin", "goblin", 100},
		{"", "", 100},
		{"goblin", "", 0},
		{"abc", "abd", 100 * (1 - 1.0/3.0)},
		{"signal", "signals", 100 * (1 - 1.0/7.0)},
	}
	for _, tt := range tests {
		if got := ratio(tt.a, tt.b); !approx(got, tt.want) {
			t.Errorf("ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPartialRatio(t *testing.T) {
	t.Parallel()

	if got := partialRatio("goblin", "guardian goblin"); got != 100 {
		t.Errorf("partialRatio(substring) = %v, want 100", got)
	}
	if got := partialRatio("guardian goblin", "goblin"); got != 100 {
		t.Errorf("partialRatio is not symmetric in argument order: %v", got)
	}
	if got := partialRatio("", "goblin"); got != 0 {
		t.Errorf("partialRatio(empty) = %v, want 0", got)
	}
}

func TestTokenRatios(t *testing.T) {
	t.Parallel()

	if got := tokenSortRatio("landing crash", "crash landing", ratio); got != 100 {
		t.Errorf("tokenSortRatio(reordered) = %v, want 100", got)
	}
	if got := tokenSetRatio("crash landing on you", "crash landing you", ratio); got != 100 {
		t.Errorf("tokenSetRatio(subset) = %v, want 100", got)
	}
	if got := tokenSetRatio("kingdom", "signal", ratio); got >= 50 {
		t.Errorf("tokenSetRatio(disjoint) = %v, want < 50", got)
	}
}

func TestWeightedRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "crash landing on you", "crash landing on you", 100},
		{"empty side", "", "goblin", 0},
		{"reordered words", "landing crash on you", "crash landing on you", 95},
		{"short query in long title", "goblin", "guardian the lonely and great god goblin", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := weightedRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("weightedRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWeightedRatio_Bounds(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"nonexistent show title", "descendants of the sun"},
		{"signal", "reply 1988"},
		{"k", "kingdom"},
		{"a very long query about something else entirely", "goblin"},
	}
	for _, p := range pairs {
		got := weightedRatio(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("weightedRatio(%q, %q) = %d, outside [0, 100]", p[0], p[1], got)
		}
		if got != weightedRatio(p[0], p[1]) {
			t.Errorf("weightedRatio(%q, %q) is not deterministic", p[0], p[1])
		}
	}
}
