package domain

import "time"

// BattleResult - outcome of a participation
type BattleResult string

const (
	BattleWin  BattleResult = "WIN"
	BattleLoss BattleResult = "LOSS"
	BattleDraw BattleResult = "DRAW"
)

// Battle is created and resolved within a single request; there is no
// asynchronous matching.
type Battle struct {
	ID             int64      `db:"id" json:"id"`
	Mode           string     `db:"mode" json:"mode"`
	EntryGold      int64      `db:"entry_gold" json:"entry_gold"`
	RewardGold     int64      `db:"reward_gold" json:"reward_gold"`
	RewardUsdCents int64      `db:"reward_usd_cents" json:"reward_usd_cents"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	ResolvedAt     *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}

type BattleParticipation struct {
	ID       int64        `db:"id" json:"id"`
	BattleID int64        `db:"battle_id" json:"battle_id"`
	UserID   int64        `db:"user_id" json:"user_id"`
	Result   BattleResult `db:"result" json:"result"`

	DisplayName string `db:"-" json:"display_name,omitempty"`
}
