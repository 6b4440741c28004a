package runner

import (
	"sort"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// spawnKinds fixes the order kinds are laid out on the roll line.
var spawnKinds = []Kind{KindObstacle, KindFlyer, KindPlatform}

// Weight is the probability of one kind within a tier.
type Weight struct {
	Kind Kind
	P    float64
}

// Tier is a spawn distribution that applies from MinScore upwards.
type Tier struct {
	MinScore int
	Weights  map[Kind]float64
}

// SpawnPolicy maps the score to a distribution over spawnable kinds.
type SpawnPolicy struct {
	Tiers []Tier // Sorted by MinScore
}

// NewSpawnPolicy converts config tiers, sorting them by MinScore.
func NewSpawnPolicy(tiers []config.SpawnTier) SpawnPolicy {
	p := SpawnPolicy{Tiers: make([]Tier, 0, len(tiers))}
	for _, t := range tiers {
		tier := Tier{MinScore: t.MinScore, Weights: make(map[Kind]float64, len(t.Weights))}
		for name, w := range t.Weights {
			if k, ok := ParseKind(name); ok {
				tier.Weights[k] = w
			}
		}
		p.Tiers = append(p.Tiers, tier)
	}
	sort.SliceStable(p.Tiers, func(i, j int) bool {
		return p.Tiers[i].MinScore < p.Tiers[j].MinScore
	})
	return p
}

// tier returns the highest tier with MinScore <= score. Scores below
// every threshold use the lowest tier.
func (p SpawnPolicy) tier(score int) Tier {
	if len(p.Tiers) == 0 {
		return Tier{Weights: map[Kind]float64{KindObstacle: 1}}
	}
	t := p.Tiers[0]
	for _, candidate := range p.Tiers[1:] {
		if candidate.MinScore > score {
			break
		}
		t = candidate
	}
	return t
}

// Distribution returns the normalised probabilities in effect at score.
// Kinds with zero weight are omitted.
func (p SpawnPolicy) Distribution(score int) []Weight {
	t := p.tier(score)

	total := 0.0
	for _, k := range spawnKinds {
		if w := t.Weights[k]; w > 0 {
			total += w
		}
	}

	dist := make([]Weight, 0, len(spawnKinds))
	for _, k := range spawnKinds {
		if w := t.Weights[k]; w > 0 {
			dist = append(dist, Weight{Kind: k, P: w / total})
		}
	}
	return dist
}

// Pick maps roll in [0, 1) to a kind. The same score and roll always
// produce the same kind.
func (p SpawnPolicy) Pick(score int, roll float64) Kind {
	dist := p.Distribution(score)
	if len(dist) == 0 {
		return KindObstacle
	}

	acc := 0.0
	for _, w := range dist {
		acc += w.P
		if roll < acc {
			return w.Kind
		}
	}
	return dist[len(dist)-1].Kind
}
