package main

import (
	"context"
	"log"
	"os"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeds the settings row and the shop catalog. Safe to run repeatedly:
// everything upserts on name.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	secret := os.Getenv("AD_VERIFICATION_SECRET")
	if secret == "" {
		secret = "aurora-secret-token"
	}

	settings := repository.NewSettingsRepository(db)
	if err := settings.Bootstrap(ctx, domain.Settings{
		GoldPurchaseRate:     10,
		GoldWithdrawRate:     20,
		AdDailyLimit:         8,
		AdRewardGold:         5,
		FarmBaseMultiplier:   1,
		AdVerificationSecret: secret,
	}); err != nil {
		log.Fatalf("bootstrap settings: %v", err)
	}

	nftTemplates := []domain.NFTTemplate{
		{Name: "Common Sentinel", Rarity: domain.RarityCommon, GoldPerHour: 2, BasePriceGold: 120,
			Description: "A basic unit to start farming GOLD.", ImageURL: "/assets/nfts/common-sentinel.svg"},
		{Name: "Rare Guardian", Rarity: domain.RarityRare, GoldPerHour: 6, BasePriceGold: 320,
			Description: "A rare guardian with a superior farm rate.", ImageURL: "/assets/nfts/rare-guardian.svg"},
		{Name: "Epic Arcanist", Rarity: domain.RarityEpic, GoldPerHour: 15, BasePriceGold: 900,
			Description: "Channels arcane energy to raise the farm.", ImageURL: "/assets/nfts/epic-chanter.svg"},
		{Name: "Legendary Dragon", Rarity: domain.RarityLegendary, GoldPerHour: 35, BasePriceGold: 2000,
			Description: "A legendary creature with massive GOLD output.", ImageURL: "/assets/nfts/legendary-dragon.svg"},
		{Name: "Mythic Titan", Rarity: domain.RarityMythic, GoldPerHour: 70, BasePriceGold: 4200,
			Description: "The peak of farming, granting absurd amounts of GOLD.", ImageURL: "/assets/nfts/mythic-titan.svg"},
	}
	for _, t := range nftTemplates {
		_, err := db.Exec(ctx, `
			INSERT INTO nft_templates (name, rarity, gold_per_hour, base_price_gold, description, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET
				rarity = EXCLUDED.rarity,
				gold_per_hour = EXCLUDED.gold_per_hour,
				base_price_gold = EXCLUDED.base_price_gold,
				description = EXCLUDED.description,
				image_url = EXCLUDED.image_url`,
			t.Name, t.Rarity, t.GoldPerHour, t.BasePriceGold, t.Description, t.ImageURL)
		if err != nil {
			log.Fatalf("seed nft template %s: %v", t.Name, err)
		}
	}

	boosts := []domain.BoostTemplate{
		{Name: "Farm Catalyst", Description: "Multiplies GOLD farming 2x for 6h.",
			GoldCost: 250, Multiplier: 2, DurationHours: 6},
		{Name: "Energy Overclock", Description: "Boosts farm output 1.5x for 12h.",
			GoldCost: 180, Multiplier: 1.5, DurationHours: 12},
	}
	for _, b := range boosts {
		_, err := db.Exec(ctx, `
			INSERT INTO boost_templates (name, description, gold_cost, multiplier, duration_hours)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO UPDATE SET
				description = EXCLUDED.description,
				gold_cost = EXCLUDED.gold_cost,
				multiplier = EXCLUDED.multiplier,
				duration_hours = EXCLUDED.duration_hours`,
			b.Name, b.Description, b.GoldCost, b.Multiplier, b.DurationHours)
		if err != nil {
			log.Fatalf("seed boost template %s: %v", b.Name, err)
		}
	}

	cosmetics := []domain.CosmeticItem{
		{Name: "Neon Aura", Description: "Gives your avatar a vibrant neon glow.",
			GoldCost: 80, ImageURL: "/assets/cosmetics/neon-aura.svg"},
		{Name: "Celestial Cloak", Description: "Dresses the hero in a starry blue cloak.",
			GoldCost: 140, ImageURL: "/assets/cosmetics/celestial-cloak.svg"},
	}
	for _, item := range cosmetics {
		_, err := db.Exec(ctx, `
			INSERT INTO cosmetic_items (name, description, gold_cost, image_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET
				description = EXCLUDED.description,
				gold_cost = EXCLUDED.gold_cost,
				image_url = EXCLUDED.image_url`,
			item.Name, item.Description, item.GoldCost, item.ImageURL)
		if err != nil {
			log.Fatalf("seed cosmetic %s: %v", item.Name, err)
		}
	}

	log.Println("seed complete")
}
