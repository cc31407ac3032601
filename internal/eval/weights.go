package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// PhaseWeights are the coefficients applied to one phase (early- or
// late-game) of a position's feature vector. A constant Bias term lets each
// phase's score sit on its own baseline, matching the way the teacher's
// evaluation leans more heavily on area control early and on health/length
// attrition late.
type PhaseWeights struct {
	Bias              float64
	EnemiesAlive      float64
	OwnHealth         float64
	LowestEnemyHealth float64
	LengthDiff        float64
	NonHazardAreaDiff float64
	FoodInAreaDiff    float64
	Reach5Diff        float64
	ClosestFoodDist   float64
}

// Weights blends an Early and a Late PhaseWeights by a game-progression
// fraction (spec.md's eval blending, grounded on
// original_source/src/minimax/eval.rs's WEIGHTS array — here split into two
// named 9-field phases instead of one flat 18-element slice, since the
// fields are read by name throughout features.go and eval.go).
type Weights struct {
	Early PhaseWeights
	Late  PhaseWeights
}

// DefaultWeights mirrors the teacher's hand-tuned defaults: area control
// and food access dominate early, health and length attrition dominate
// late.
func DefaultWeights() Weights {
	return Weights{
		Early: PhaseWeights{
			Bias:              0,
			EnemiesAlive:      -40,
			OwnHealth:         0.2,
			LowestEnemyHealth: -0.1,
			LengthDiff:        5,
			NonHazardAreaDiff: 4,
			FoodInAreaDiff:    3,
			Reach5Diff:        2,
			ClosestFoodDist:   -1,
		},
		Late: PhaseWeights{
			Bias:              0,
			EnemiesAlive:      -60,
			OwnHealth:         0.5,
			LowestEnemyHealth: -0.3,
			LengthDiff:        10,
			NonHazardAreaDiff: 6,
			FoodInAreaDiff:    1,
			Reach5Diff:        1,
			ClosestFoodDist:   -0.5,
		},
	}
}

// ParseWeights decodes the semicolon-separated 18-value WEIGHTS format
// (spec.md's configurable weight vector): 9 early values followed by 9 late
// values, each group ordered EnemiesAlive, OwnHealth, LowestEnemyHealth,
// LengthDiff, NonHazardAreaDiff, FoodInAreaDiff, Reach5Diff,
// ClosestFoodDist, Bias.
func ParseWeights(s string) (Weights, error) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	if len(parts) != 18 {
		return Weights{}, fmt.Errorf("eval: WEIGHTS needs 18 values, got %d", len(parts))
	}
	vals := make([]float64, 18)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("eval: WEIGHTS value %d (%q): %w", i, p, err)
		}
		vals[i] = v
	}
	w := Weights{}
	assignPhase(&w.Early, vals[0:9])
	assignPhase(&w.Late, vals[9:18])
	return w, nil
}

func assignPhase(p *PhaseWeights, vals []float64) {
	p.EnemiesAlive = vals[0]
	p.OwnHealth = vals[1]
	p.LowestEnemyHealth = vals[2]
	p.LengthDiff = vals[3]
	p.NonHazardAreaDiff = vals[4]
	p.FoodInAreaDiff = vals[5]
	p.Reach5Diff = vals[6]
	p.ClosestFoodDist = vals[7]
	p.Bias = vals[8]
}
