package eval

import "github.com/brensch/shapeshifter/internal/board"

// features holds one side's (us vs. worst enemy) raw feature values before
// weighting, computed once per evaluated position and reused by both the
// early and late phase dot products.
type features struct {
	enemiesAlive      int
	ownHealth         int
	lowestEnemyHealth int
	lengthDiff        int
	nonHazardAreaDiff int
	foodInAreaDiff    int
	reach5Diff        int
	closestFoodDist   int
}

const noFoodDistance = 1 << 20

func computeFeatures(b *board.Board) features {
	us := b.Snakes[0]

	f := features{
		ownHealth:       us.Health,
		closestFoodDist: closestFoodDistance(b, us.Head),
	}

	lowestEnemyHealth := -1
	aliveEnemies := 0
	lengthDiffSum := 0
	for i := 1; i < len(b.Snakes); i++ {
		e := b.Snakes[i]
		if !e.Alive() {
			continue
		}
		aliveEnemies++
		if lowestEnemyHealth < 0 || e.Health < lowestEnemyHealth {
			lowestEnemyHealth = e.Health
		}
		lengthDiffSum += us.Length - e.Length
	}
	f.enemiesAlive = aliveEnemies
	if lowestEnemyHealth < 0 {
		lowestEnemyHealth = 0
	}
	f.lowestEnemyHealth = lowestEnemyHealth
	if aliveEnemies > 0 {
		f.lengthDiff = lengthDiffSum / aliveEnemies
	}

	nonHazardArea := NonHazardAreaControl(b)
	foodInArea := FoodInArea(b)
	reach5 := ReachWithin(b, 5)
	f.nonHazardAreaDiff = diffAgainstBestEnemy(nonHazardArea)
	f.foodInAreaDiff = diffAgainstBestEnemy(foodInArea)
	f.reach5Diff = diffAgainstBestEnemy(reach5)

	return f
}

// diffAgainstBestEnemy returns values[0] (us) minus the largest value among
// alive enemies, so a single scalar captures "are we ahead of whoever is
// doing best against us" rather than averaging across enemies of very
// different skill/position.
func diffAgainstBestEnemy(values []int) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > best {
			best = values[i]
		}
	}
	return values[0] - best
}

func closestFoodDistance(b *board.Board, head int) int {
	if !b.Food.Any() {
		return noFoodDistance
	}
	best := noFoodDistance
	hx, hy := head%b.Width, head/b.Width
	for cell := 0; cell < b.Width*b.Height; cell++ {
		if !b.Food.Get(cell) {
			continue
		}
		fx, fy := cell%b.Width, cell/b.Width
		d := manhattan(hx, hy, fx, fy, b.Width, b.Height, b.Wrap)
		if d < best {
			best = d
		}
	}
	return best
}

func manhattan(x1, y1, x2, y2, w, h int, wrap bool) int {
	dx := absInt(x1 - x2)
	dy := absInt(y1 - y2)
	if wrap {
		if w-dx < dx {
			dx = w - dx
		}
		if h-dy < dy {
			dy = h - dy
		}
	}
	return dx + dy
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (f features) dot(w PhaseWeights) float64 {
	return w.Bias +
		w.EnemiesAlive*float64(f.enemiesAlive) +
		w.OwnHealth*float64(f.ownHealth) +
		w.LowestEnemyHealth*float64(f.lowestEnemyHealth) +
		w.LengthDiff*float64(f.lengthDiff) +
		w.NonHazardAreaDiff*float64(f.nonHazardAreaDiff) +
		w.FoodInAreaDiff*float64(f.foodInAreaDiff) +
		w.Reach5Diff*float64(f.reach5Diff) +
		w.ClosestFoodDist*float64(f.closestFoodDist)
}
