package domain

import "time"

// MaxEnergy is the hard cap on a user's energy reserve.
const MaxEnergy = 500

// DefaultEnergy is granted to freshly registered users.
const DefaultEnergy = 120

type User struct {
	ID                int64     `db:"id" json:"id"`
	Username          string    `db:"username" json:"username"`
	DisplayName       string    `db:"display_name" json:"display_name"`
	GoldBalance       int64     `db:"gold_balance" json:"gold_balance"`
	UsdCents          int64     `db:"usd_cents" json:"usd_cents"`
	Energy            int       `db:"energy" json:"energy"`
	FarmLastClaimedAt time.Time `db:"farm_last_claimed_at" json:"farm_last_claimed_at"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// UsdBalance returns the balance in dollars for client display.
func (u *User) UsdBalance() float64 {
	return float64(u.UsdCents) / 100
}
