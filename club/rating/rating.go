// Package rating deterministically maps a player's attributes and cumulative
// performance counters to a bounded numeric rating and a card tier. Identical
// inputs always produce identical outputs: there is no state, no randomness
// and no failure mode - malformed attribute inputs count as zero and it is the
// caller's job to validate vectors before asking for a score.
package rating

import (
	"math"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// Rating bounds. The clamp to [MinRating, MaxRating] is a hard invariant:
// no caller may persist a rating outside this range.
const (
	MinRating = 1
	MaxRating = 99
)

// Tier thresholds, shared by persistence and projection.
const (
	legendThreshold = 90
	goldThreshold   = 80
	silverThreshold = 70
)

// minorWeight is what any component not listed for a role still contributes.
// Intentional: unlisted attributes matter marginally, never zero.
const minorWeight = 0.01

// defaultWeight is the uniform weight applied to the default components when
// the role has no weight table of its own.
const defaultWeight = 0.2

// roleWeights lists each role's weighted components. Weights sum to 1.0 per
// role.
var roleWeights = map[models.Role]map[string]float64{
	models.RoleForward: {
		"shooting":  0.35,
		"pace":      0.25,
		"dribbling": 0.20,
		"passing":   0.10,
		"physical":  0.10,
	},
	models.RoleMidfielder: {
		"passing":   0.30,
		"dribbling": 0.20,
		"shooting":  0.15,
		"pace":      0.15,
		"defending": 0.10,
		"physical":  0.10,
	},
	models.RoleDefender: {
		"defending": 0.40,
		"physical":  0.25,
		"passing":   0.20,
		"pace":      0.15,
	},
	models.RoleGoalkeeper: {
		"diving":   0.30,
		"reflexes": 0.30,
		"handling": 0.25,
		"passing":  0.10,
		"physical": 0.05,
	},
}

// defaultComponents carry the uniform weight for roles without a table.
var defaultComponents = []string{"pace", "shooting", "passing", "dribbling", "defending"}

// ComputeBaseScore computes the role-weighted attribute score, rounded
// half-up. Components outside 0-100 are treated as zero.
func ComputeBaseScore(attrs models.Attributes, role models.Role) int {
	weights, ok := roleWeights[role]
	if !ok {
		weights = make(map[string]float64, len(defaultComponents))
		for _, name := range defaultComponents {
			weights[name] = defaultWeight
		}
	}

	var num, den float64
	for name, value := range componentValues(attrs) {
		w, listed := weights[name]
		if !listed {
			w = minorWeight
		}
		num += value * w
		den += w
	}
	return roundHalfUp(num / den)
}

// ApplyPerformanceAdjustment applies the role-gated integer bonuses and
// penalties to base and clamps the result to [MinRating, MaxRating].
// All thresholds use integer floor division on non-negative counters;
// penalties floor the magnitude first and then negate.
func ApplyPerformanceAdjustment(base int, role models.Role, perf models.Performance) int {
	bonus := 0

	// Universal penalties, every role.
	bonus -= nonNeg(perf.PenaltiesMissed) / 2
	bonus -= nonNeg(perf.OwnGoals) / 2

	switch role {
	case models.RoleForward, models.RoleMidfielder:
		bonus += nonNeg(perf.Goals) / 4
		bonus += nonNeg(perf.Assists) / 3
		bonus += nonNeg(perf.DefensiveActions) / 10
	case models.RoleDefender:
		bonus += nonNeg(perf.DefensiveActions) / 8
		bonus += nonNeg(perf.CleanSheets) // every clean sheet counts
	case models.RoleGoalkeeper:
		bonus += nonNeg(perf.Saves) / 6
		bonus += nonNeg(perf.Goals) // rare but uncapped
		bonus += nonNeg(perf.Assists) / 2
		bonus -= nonNeg(perf.GoalsConceded) / 4
		bonus += nonNeg(perf.PenaltySaves) // every penalty save counts
	}

	return clamp(base+bonus, MinRating, MaxRating)
}

// Evaluate is the convenience path services use before persisting: base score,
// performance adjustment, tier for the final rating.
func Evaluate(attrs models.Attributes, role models.Role, perf models.Performance) (int, models.Tier) {
	score := ApplyPerformanceAdjustment(ComputeBaseScore(attrs, role), role, perf)
	return score, TierForScore(score)
}

// TierForScore maps a rating to its card tier.
func TierForScore(score int) models.Tier {
	switch {
	case score >= legendThreshold:
		return models.TierLegend
	case score >= goldThreshold:
		return models.TierGold
	case score >= silverThreshold:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

// componentValues flattens the attribute vector into named components,
// zeroing anything outside the 0-100 range.
func componentValues(attrs models.Attributes) map[string]float64 {
	raw := map[string]int{
		"pace":      attrs.Pace,
		"shooting":  attrs.Shooting,
		"passing":   attrs.Passing,
		"dribbling": attrs.Dribbling,
		"defending": attrs.Defending,
		"physical":  attrs.Physical,
		"diving":    attrs.Diving,
		"handling":  attrs.Handling,
		"reflexes":  attrs.Reflexes,
	}
	values := make(map[string]float64, len(raw))
	for name, v := range raw {
		if v < 0 || v > 100 {
			v = 0
		}
		values[name] = float64(v)
	}
	return values
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func nonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
