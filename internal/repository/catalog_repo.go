package repository

import (
	"context"

	"aurora_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository serves the immutable shop catalog (NFT templates,
// boost templates, cosmetic items) and the per-user instance tables.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// querier is satisfied by the pool and by an open pgx.Tx, so instance
// listings can run either standalone or inside a caller's transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const nftTemplateColumns = `id, name, rarity, gold_per_hour, base_price_gold, description, image_url`

func scanNFTTemplate(row pgx.Row) (*domain.NFTTemplate, error) {
	var t domain.NFTTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Rarity, &t.GoldPerHour, &t.BasePriceGold, &t.Description, &t.ImageURL)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CatalogRepository) ListNFTTemplates(ctx context.Context) ([]*domain.NFTTemplate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+nftTemplateColumns+` FROM nft_templates ORDER BY base_price_gold ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.NFTTemplate
	for rows.Next() {
		t, err := scanNFTTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) GetNFTTemplate(ctx context.Context, id int64) (*domain.NFTTemplate, error) {
	return scanNFTTemplate(r.db.QueryRow(ctx,
		`SELECT `+nftTemplateColumns+` FROM nft_templates WHERE id = $1`, id))
}

// BestNFTTemplateByRarity picks the strongest template of a rarity for
// loot box payouts. pgx.ErrNoRows means the catalog has no such tier.
func (r *CatalogRepository) BestNFTTemplateByRarity(ctx context.Context, rarity domain.Rarity) (*domain.NFTTemplate, error) {
	return scanNFTTemplate(r.db.QueryRow(ctx,
		`SELECT `+nftTemplateColumns+` FROM nft_templates
		 WHERE rarity = $1 ORDER BY gold_per_hour DESC LIMIT 1`, rarity))
}

// CreateNFTInstance mints an owned copy inside the purchase transaction.
func (r *CatalogRepository) CreateNFTInstance(ctx context.Context, dbTx pgx.Tx, inst *domain.NFTInstance) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO nft_instances (owner_id, template_id) VALUES ($1, $2)
		 RETURNING id, acquired_at`,
		inst.OwnerID, inst.TemplateID,
	).Scan(&inst.ID, &inst.AcquiredAt)
}

// ListUserNFTs returns the user's instances with templates joined in.
func (r *CatalogRepository) ListUserNFTs(ctx context.Context, ownerID int64) ([]domain.NFTInstance, error) {
	return r.listUserNFTs(ctx, r.db, ownerID)
}

// ListUserNFTsTx reads the user's NFTs inside dbTx, so a claim computed
// against a locked user row sees the same snapshot it resets.
func (r *CatalogRepository) ListUserNFTsTx(ctx context.Context, dbTx pgx.Tx, ownerID int64) ([]domain.NFTInstance, error) {
	return r.listUserNFTs(ctx, dbTx, ownerID)
}

func (r *CatalogRepository) listUserNFTs(ctx context.Context, q querier, ownerID int64) ([]domain.NFTInstance, error) {
	rows, err := q.Query(ctx,
		`SELECT i.id, i.owner_id, i.template_id, i.acquired_at,
		        t.id, t.name, t.rarity, t.gold_per_hour, t.base_price_gold, t.description, t.image_url
		 FROM nft_instances i
		 JOIN nft_templates t ON t.id = i.template_id
		 WHERE i.owner_id = $1
		 ORDER BY i.acquired_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NFTInstance
	for rows.Next() {
		var inst domain.NFTInstance
		var t domain.NFTTemplate
		if err := rows.Scan(&inst.ID, &inst.OwnerID, &inst.TemplateID, &inst.AcquiredAt,
			&t.ID, &t.Name, &t.Rarity, &t.GoldPerHour, &t.BasePriceGold, &t.Description, &t.ImageURL); err != nil {
			return nil, err
		}
		inst.Template = &t
		result = append(result, inst)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) CountNFTInstances(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM nft_instances`).Scan(&n)
	return n, err
}

const boostTemplateColumns = `id, name, description, gold_cost, multiplier, duration_hours`

func scanBoostTemplate(row pgx.Row) (*domain.BoostTemplate, error) {
	var t domain.BoostTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.GoldCost, &t.Multiplier, &t.DurationHours)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CatalogRepository) ListBoostTemplates(ctx context.Context) ([]*domain.BoostTemplate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+boostTemplateColumns+` FROM boost_templates ORDER BY gold_cost ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BoostTemplate
	for rows.Next() {
		t, err := scanBoostTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) GetBoostTemplate(ctx context.Context, id int64) (*domain.BoostTemplate, error) {
	return scanBoostTemplate(r.db.QueryRow(ctx,
		`SELECT `+boostTemplateColumns+` FROM boost_templates WHERE id = $1`, id))
}

// StrongestBoostTemplate picks the highest multiplier for box payouts.
func (r *CatalogRepository) StrongestBoostTemplate(ctx context.Context) (*domain.BoostTemplate, error) {
	return scanBoostTemplate(r.db.QueryRow(ctx,
		`SELECT `+boostTemplateColumns+` FROM boost_templates
		 ORDER BY multiplier DESC LIMIT 1`))
}

// ActivateBoost creates a running boost instance inside dbTx.
func (r *CatalogRepository) ActivateBoost(ctx context.Context, dbTx pgx.Tx, inst *domain.BoostInstance) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO boost_instances (owner_id, template_id, activated_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		inst.OwnerID, inst.TemplateID, inst.ActivatedAt, inst.ExpiresAt,
	).Scan(&inst.ID)
}

// ListUserBoosts returns boosts for the user, expired ones included; the
// caller decides activity against its own clock.
func (r *CatalogRepository) ListUserBoosts(ctx context.Context, ownerID int64) ([]domain.BoostInstance, error) {
	return r.listUserBoosts(ctx, r.db, ownerID)
}

// ListUserBoostsTx is the in-transaction variant of ListUserBoosts.
func (r *CatalogRepository) ListUserBoostsTx(ctx context.Context, dbTx pgx.Tx, ownerID int64) ([]domain.BoostInstance, error) {
	return r.listUserBoosts(ctx, dbTx, ownerID)
}

func (r *CatalogRepository) listUserBoosts(ctx context.Context, q querier, ownerID int64) ([]domain.BoostInstance, error) {
	rows, err := q.Query(ctx,
		`SELECT i.id, i.owner_id, i.template_id, i.activated_at, i.expires_at,
		        t.id, t.name, t.description, t.gold_cost, t.multiplier, t.duration_hours
		 FROM boost_instances i
		 JOIN boost_templates t ON t.id = i.template_id
		 WHERE i.owner_id = $1
		 ORDER BY i.expires_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BoostInstance
	for rows.Next() {
		var inst domain.BoostInstance
		var t domain.BoostTemplate
		if err := rows.Scan(&inst.ID, &inst.OwnerID, &inst.TemplateID, &inst.ActivatedAt, &inst.ExpiresAt,
			&t.ID, &t.Name, &t.Description, &t.GoldCost, &t.Multiplier, &t.DurationHours); err != nil {
			return nil, err
		}
		inst.Template = &t
		result = append(result, inst)
	}
	return result, rows.Err()
}

const cosmeticColumns = `id, name, description, gold_cost, image_url`

func scanCosmeticItem(row pgx.Row) (*domain.CosmeticItem, error) {
	var item domain.CosmeticItem
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.GoldCost, &item.ImageURL)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) ListCosmeticItems(ctx context.Context) ([]*domain.CosmeticItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+cosmeticColumns+` FROM cosmetic_items ORDER BY gold_cost ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.CosmeticItem
	for rows.Next() {
		item, err := scanCosmeticItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *CatalogRepository) GetCosmeticItem(ctx context.Context, id int64) (*domain.CosmeticItem, error) {
	return scanCosmeticItem(r.db.QueryRow(ctx,
		`SELECT `+cosmeticColumns+` FROM cosmetic_items WHERE id = $1`, id))
}

// CosmeticOwned checks for an existing (owner, item) record inside dbTx
// so the uniqueness check holds until commit.
func (r *CatalogRepository) CosmeticOwned(ctx context.Context, dbTx pgx.Tx, ownerID, itemID int64) (bool, error) {
	var exists bool
	err := dbTx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM cosmetic_instances WHERE owner_id = $1 AND item_id = $2)`,
		ownerID, itemID).Scan(&exists)
	return exists, err
}

func (r *CatalogRepository) CreateCosmeticInstance(ctx context.Context, dbTx pgx.Tx, inst *domain.CosmeticInstance) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO cosmetic_instances (owner_id, item_id) VALUES ($1, $2)
		 RETURNING id, acquired_at`,
		inst.OwnerID, inst.ItemID,
	).Scan(&inst.ID, &inst.AcquiredAt)
}

// ListUserCosmetics returns owned cosmetics with items joined in.
func (r *CatalogRepository) ListUserCosmetics(ctx context.Context, ownerID int64) ([]domain.CosmeticInstance, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.owner_id, i.item_id, i.acquired_at,
		        c.id, c.name, c.description, c.gold_cost, c.image_url
		 FROM cosmetic_instances i
		 JOIN cosmetic_items c ON c.id = i.item_id
		 WHERE i.owner_id = $1
		 ORDER BY i.acquired_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CosmeticInstance
	for rows.Next() {
		var inst domain.CosmeticInstance
		var item domain.CosmeticItem
		if err := rows.Scan(&inst.ID, &inst.OwnerID, &inst.ItemID, &inst.AcquiredAt,
			&item.ID, &item.Name, &item.Description, &item.GoldCost, &item.ImageURL); err != nil {
			return nil, err
		}
		inst.Item = &item
		result = append(result, inst)
	}
	return result, rows.Err()
}
