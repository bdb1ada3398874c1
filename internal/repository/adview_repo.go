package repository

import (
	"context"
	"time"

	"aurora_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adViewColumns = `id, user_id, token, reward_gold, consumed, created_at`

type AdViewRepository struct {
	db *pgxpool.Pool
}

func NewAdViewRepository(db *pgxpool.Pool) *AdViewRepository {
	return &AdViewRepository{db: db}
}

// Create issues a fresh ad view in the ISSUED state.
func (r *AdViewRepository) Create(ctx context.Context, view *domain.AdView) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO ad_views (user_id, token, reward_gold, consumed)
		 VALUES ($1, $2, $3, FALSE)
		 RETURNING id, created_at`,
		view.UserID, view.Token, view.RewardGold,
	).Scan(&view.ID, &view.CreatedAt)
}

// GetByToken looks up an ad view inside dbTx.
func (r *AdViewRepository) GetByToken(ctx context.Context, dbTx pgx.Tx, token string) (*domain.AdView, error) {
	var v domain.AdView
	err := dbTx.QueryRow(ctx,
		`SELECT `+adViewColumns+` FROM ad_views WHERE token = $1`, token,
	).Scan(&v.ID, &v.UserID, &v.Token, &v.RewardGold, &v.Consumed, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Consume flips the consumed flag with a compare-and-set: of two racing
// completions exactly one sees a row, the other gets pgx.ErrNoRows.
func (r *AdViewRepository) Consume(ctx context.Context, dbTx pgx.Tx, token string) (*domain.AdView, error) {
	var v domain.AdView
	err := dbTx.QueryRow(ctx,
		`UPDATE ad_views SET consumed = TRUE
		 WHERE token = $1 AND consumed = FALSE
		 RETURNING `+adViewColumns, token,
	).Scan(&v.ID, &v.UserID, &v.Token, &v.RewardGold, &v.Consumed, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CountConsumedSince counts redeemed views for the daily quota. Issued
// but never completed views do not count against the limit.
func (r *AdViewRepository) CountConsumedSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM ad_views
		 WHERE user_id = $1 AND consumed = TRUE AND created_at >= $2`,
		userID, since).Scan(&n)
	return n, err
}

// CountConsumedSinceTx is the same check inside a completion transaction,
// guarding a burst of concurrently started views.
func (r *AdViewRepository) CountConsumedSinceTx(ctx context.Context, dbTx pgx.Tx, userID int64, since time.Time) (int, error) {
	var n int
	err := dbTx.QueryRow(ctx,
		`SELECT COUNT(*) FROM ad_views
		 WHERE user_id = $1 AND consumed = TRUE AND created_at >= $2`,
		userID, since).Scan(&n)
	return n, err
}
