package economy

import (
	"math"
	"testing"
)

func TestBattleModeByKey(t *testing.T) {
	mode := BattleModeByKey("raid")
	if mode.EntryGold != 120 || mode.RewardGold != 220 || mode.EnergyCost != 40 {
		t.Fatalf("unexpected raid config: %+v", mode)
	}

	// unknown keys fall back to skirmish
	if mode := BattleModeByKey("bossfight"); mode.Key != "skirmish" {
		t.Fatalf("expected skirmish fallback, got %s", mode.Key)
	}
}

func TestResolveBattleWinRate(t *testing.T) {
	rng := testRand()
	mode := BattleModeByKey("skirmish")

	const trials = 100000
	wins := 0
	for i := 0; i < trials; i++ {
		if ResolveBattle(rng, mode) {
			wins++
		}
	}

	got := float64(wins) / trials
	if math.Abs(got-mode.WinChance) > 0.01 {
		t.Fatalf("win rate %.3f deviates from %.2f", got, mode.WinChance)
	}
}

func TestBattleModesArePositiveSumForWinners(t *testing.T) {
	for key, mode := range BattleModes() {
		if mode.RewardGold <= mode.EntryGold {
			t.Errorf("mode %s: reward %d does not exceed entry %d", key, mode.RewardGold, mode.EntryGold)
		}
		if mode.WinChance <= 0 || mode.WinChance >= 1 {
			t.Errorf("mode %s: win chance %v out of (0, 1)", key, mode.WinChance)
		}
	}
}
