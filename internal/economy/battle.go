package economy

import "math/rand/v2"

// BattleMode is a server-resolved battle configuration. The entry cost is
// charged up front regardless of outcome; the reward is credited only on
// a win.
type BattleMode struct {
	Key        string  `json:"key"`
	EntryGold  int64   `json:"entry_gold"`
	RewardGold int64   `json:"reward_gold"`
	EnergyCost int     `json:"energy_cost"`
	WinChance  float64 `json:"win_chance"`
}

// BattleModes returns the battle catalog keyed by mode name.
func BattleModes() map[string]BattleMode {
	return map[string]BattleMode{
		"skirmish":   {Key: "skirmish", EntryGold: 50, RewardGold: 90, EnergyCost: 20, WinChance: 0.6},
		"raid":       {Key: "raid", EntryGold: 120, RewardGold: 220, EnergyCost: 40, WinChance: 0.45},
		"tournament": {Key: "tournament", EntryGold: 300, RewardGold: 620, EnergyCost: 60, WinChance: 0.35},
	}
}

// BattleModeByKey resolves a mode key, defaulting to skirmish.
func BattleModeByKey(key string) BattleMode {
	if mode, ok := BattleModes()[key]; ok {
		return mode
	}
	return BattleModes()["skirmish"]
}

// ResolveBattle runs the single Bernoulli trial for the mode.
func ResolveBattle(rng *rand.Rand, mode BattleMode) bool {
	return rng.Float64() <= mode.WinChance
}
