package domain

import "time"

// Rarity - tier of an NFT template, ordered by farming power
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
	RarityMythic    Rarity = "MYTHIC"
)

// rarityOrder maps each rarity to its position in the power ladder.
var rarityOrder = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
	RarityMythic:    4,
}

// Valid reports whether r is a known rarity tier.
func (r Rarity) Valid() bool {
	_, ok := rarityOrder[r]
	return ok
}

// Less reports whether r is a weaker tier than other.
func (r Rarity) Less(other Rarity) bool {
	return rarityOrder[r] < rarityOrder[other]
}

// NFTTemplate is an immutable catalog entry sold in the shop.
type NFTTemplate struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Rarity        Rarity `db:"rarity" json:"rarity"`
	GoldPerHour   int64  `db:"gold_per_hour" json:"gold_per_hour"`
	BasePriceGold int64  `db:"base_price_gold" json:"base_price_gold"`
	Description   string `db:"description" json:"description"`
	ImageURL      string `db:"image_url" json:"image_url"`
}

// NFTInstance is an owned copy of a template. Many instances may point at
// the same template; the instance carries no farm state of its own.
type NFTInstance struct {
	ID         int64        `db:"id" json:"id"`
	OwnerID    int64        `db:"owner_id" json:"owner_id"`
	TemplateID int64        `db:"template_id" json:"template_id"`
	AcquiredAt time.Time    `db:"acquired_at" json:"acquired_at"`
	Template   *NFTTemplate `db:"-" json:"template,omitempty"`
}

type BoostTemplate struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description"`
	GoldCost      int64   `db:"gold_cost" json:"gold_cost"`
	Multiplier    float64 `db:"multiplier" json:"multiplier"`
	DurationHours int     `db:"duration_hours" json:"duration_hours"`
}

type BoostInstance struct {
	ID          int64          `db:"id" json:"id"`
	OwnerID     int64          `db:"owner_id" json:"owner_id"`
	TemplateID  int64          `db:"template_id" json:"template_id"`
	ActivatedAt time.Time      `db:"activated_at" json:"activated_at"`
	ExpiresAt   time.Time      `db:"expires_at" json:"expires_at"`
	Template    *BoostTemplate `db:"-" json:"template,omitempty"`
}

// Active reports whether the boost still applies at the given instant.
func (b *BoostInstance) Active(now time.Time) bool {
	return now.Before(b.ExpiresAt)
}

type CosmeticItem struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	GoldCost    int64  `db:"gold_cost" json:"gold_cost"`
	ImageURL    string `db:"image_url" json:"image_url"`
}

// CosmeticInstance is an ownership record. At most one exists per
// (owner, item) pair; duplicate purchases are rejected.
type CosmeticInstance struct {
	ID         int64         `db:"id" json:"id"`
	OwnerID    int64         `db:"owner_id" json:"owner_id"`
	ItemID     int64         `db:"item_id" json:"item_id"`
	AcquiredAt time.Time     `db:"acquired_at" json:"acquired_at"`
	Item       *CosmeticItem `db:"-" json:"item,omitempty"`
}
