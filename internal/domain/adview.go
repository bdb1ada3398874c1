package domain

import "time"

// AdView is a single-use reward grant for watching an advertisement.
// Lifecycle is ISSUED -> CONSUMED, tracked by the consumed flag; there are
// no other transitions. RewardGold snapshots the configured reward at
// issuance so a settings change mid-flight cannot alter the payout.
type AdView struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Token      string    `db:"token" json:"token"`
	RewardGold int64     `db:"reward_gold" json:"reward_gold"`
	Consumed   bool      `db:"consumed" json:"consumed"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AdNetworks lists the ad providers a client may report completions from.
var AdNetworks = []string{"UnityAds", "AdMob", "AppLovin", "IronSource"}

// KnownAdNetwork reports whether name is one of the supported providers.
func KnownAdNetwork(name string) bool {
	for _, n := range AdNetworks {
		if n == name {
			return true
		}
	}
	return false
}
