package economy

import (
	"math"
	"math/rand/v2"
	"testing"

	"aurora_backend/internal/domain"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func TestPickRewardDistribution(t *testing.T) {
	rng := testRand()
	rewards := BoxByKey("bronze").Rewards

	const draws = 100000
	counts := make(map[RewardKind]int)
	for i := 0; i < draws; i++ {
		counts[PickReward(rng, rewards).Kind]++
	}

	// bronze weights: gold 40, energy 30, nft 20, boost 10
	expected := map[RewardKind]float64{
		RewardGold:   0.40,
		RewardEnergy: 0.30,
		RewardNFT:    0.20,
		RewardBoost:  0.10,
	}
	for kind, want := range expected {
		got := float64(counts[kind]) / draws
		if math.Abs(got-want) > 0.02 {
			t.Errorf("kind %s: observed %.3f, want %.2f +-0.02", kind, got, want)
		}
	}
}

func TestPickRewardSingleVariant(t *testing.T) {
	rng := testRand()
	rewards := []BoxReward{{Kind: RewardGold, Weight: 5}}
	for i := 0; i < 100; i++ {
		if r := PickReward(rng, rewards); r.Kind != RewardGold {
			t.Fatalf("expected gold, got %s", r.Kind)
		}
	}
}

func TestRollGoldBounds(t *testing.T) {
	rng := testRand()
	for i := 0; i < 10000; i++ {
		got := RollGold(rng, 40, 160)
		if got < 40 || got > 160 {
			t.Fatalf("roll %d out of [40, 160]", got)
		}
	}

	// degenerate range collapses to min
	if got := RollGold(rng, 50, 50); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := RollGold(rng, 50, 10); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestBoxByKey(t *testing.T) {
	if box := BoxByKey("silver"); box.CostGold != 180 {
		t.Fatalf("expected silver cost 180, got %d", box.CostGold)
	}
	// unknown keys fall back to bronze
	if box := BoxByKey("platinum"); box.Key != "bronze" {
		t.Fatalf("expected bronze fallback, got %s", box.Key)
	}
}

func TestBoxNFTVariantsCarryRarity(t *testing.T) {
	for key, box := range Boxes() {
		for _, r := range box.Rewards {
			if r.Kind == RewardNFT && !r.Rarity.Valid() {
				t.Errorf("box %s has nft variant with invalid rarity %q", key, r.Rarity)
			}
			if r.Kind == RewardGold && r.MaxGold < r.MinGold {
				t.Errorf("box %s has inverted gold range [%d, %d]", key, r.MinGold, r.MaxGold)
			}
		}
	}
}

func TestRarityOrdering(t *testing.T) {
	if !domain.RarityCommon.Less(domain.RarityMythic) {
		t.Fatal("COMMON should rank below MYTHIC")
	}
	if domain.RarityLegendary.Less(domain.RarityRare) {
		t.Fatal("LEGENDARY should not rank below RARE")
	}
}
