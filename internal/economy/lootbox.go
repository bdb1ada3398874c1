package economy

import (
	"math/rand/v2"

	"aurora_backend/internal/domain"
)

// RewardKind - kind of loot box payout
type RewardKind string

const (
	RewardGold   RewardKind = "gold"
	RewardEnergy RewardKind = "energy"
	RewardNFT    RewardKind = "nft"
	RewardBoost  RewardKind = "boost"
)

// BoxReward is one weighted variant in a box's reward table.
type BoxReward struct {
	Kind    RewardKind    `json:"kind"`
	Weight  int           `json:"weight"`
	MinGold int64         `json:"min_gold,omitempty"`
	MaxGold int64         `json:"max_gold,omitempty"`
	Energy  int           `json:"energy,omitempty"`
	Rarity  domain.Rarity `json:"rarity,omitempty"`
}

// BoxConfig is a purchasable loot box: a fixed cost and a weighted list
// of reward variants.
type BoxConfig struct {
	Key      string      `json:"key"`
	CostGold int64       `json:"cost_gold"`
	Rewards  []BoxReward `json:"rewards"`
}

// NFTFallbackGold is paid out flat when an nft variant is drawn but no
// template of the requested rarity exists in the catalog. Tunable game
// balance, not a hard-coded truth.
const NFTFallbackGold = 100

// Boxes returns the loot box catalog keyed by box name.
func Boxes() map[string]BoxConfig {
	return map[string]BoxConfig{
		"bronze": {
			Key:      "bronze",
			CostGold: 80,
			Rewards: []BoxReward{
				{Kind: RewardGold, MinGold: 40, MaxGold: 160, Weight: 40},
				{Kind: RewardEnergy, Energy: 120, Weight: 30},
				{Kind: RewardNFT, Rarity: domain.RarityCommon, Weight: 20},
				{Kind: RewardBoost, Weight: 10},
			},
		},
		"silver": {
			Key:      "silver",
			CostGold: 180,
			Rewards: []BoxReward{
				{Kind: RewardGold, MinGold: 120, MaxGold: 360, Weight: 35},
				{Kind: RewardEnergy, Energy: 240, Weight: 25},
				{Kind: RewardNFT, Rarity: domain.RarityRare, Weight: 20},
				{Kind: RewardNFT, Rarity: domain.RarityEpic, Weight: 10},
				{Kind: RewardBoost, Weight: 10},
			},
		},
		"gold": {
			Key:      "gold",
			CostGold: 420,
			Rewards: []BoxReward{
				{Kind: RewardGold, MinGold: 260, MaxGold: 760, Weight: 30},
				{Kind: RewardEnergy, Energy: 400, Weight: 20},
				{Kind: RewardNFT, Rarity: domain.RarityEpic, Weight: 20},
				{Kind: RewardNFT, Rarity: domain.RarityLegendary, Weight: 10},
				{Kind: RewardBoost, Weight: 20},
			},
		},
	}
}

// BoxByKey resolves a box key, defaulting to bronze for unknown keys.
func BoxByKey(key string) BoxConfig {
	if box, ok := Boxes()[key]; ok {
		return box
	}
	return Boxes()["bronze"]
}

// PickReward draws one variant from the table. The draw is uniform in
// [0, totalWeight); the list is walked accumulating weights and the first
// variant whose cumulative weight meets the draw wins. The threshold is
// inclusive so floating-point leftovers at the tail cannot fall through.
func PickReward(rng *rand.Rand, rewards []BoxReward) BoxReward {
	total := 0
	for _, r := range rewards {
		total += r.Weight
	}

	value := rng.Float64() * float64(total)
	cumulative := 0.0
	for _, r := range rewards {
		cumulative += float64(r.Weight)
		if value <= cumulative {
			return r
		}
	}
	return rewards[0]
}

// RollGold draws a uniform payout in [min, max] inclusive.
func RollGold(rng *rand.Rand, min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rng.Int64N(max-min+1)
}
