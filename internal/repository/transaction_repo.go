package repository

import (
	"context"
	"encoding/json"
	"time"

	"aurora_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository writes and reads the append-only ledger. Rows are
// inserted inside the same database transaction as the balance mutation
// they record, and never touched again.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithTx appends a ledger entry using an existing database transaction.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	metaJSON, err := json.Marshal(tx.Meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, gold_amount, usd_cents, note, meta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.GoldAmount, tx.UsdCents, tx.Note, metaJSON,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByUserID returns recent ledger entries for a user.
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, gold_amount, usd_cents, note, meta, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows, false)
}

// ListRecent returns the newest ledger entries across all users with the
// owning user's display name, for the admin panel.
func (r *TransactionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.user_id, t.type, t.gold_amount, t.usd_cents, t.note, t.meta, t.created_at, u.display_name
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows, true)
}

// SumGold totals signed gold across the whole ledger.
func (r *TransactionRepository) SumGold(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(gold_amount), 0) FROM transactions`).Scan(&sum)
	return sum, err
}

// SumUsdCents totals signed USD valuation across the whole ledger.
func (r *TransactionRepository) SumUsdCents(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(usd_cents), 0) FROM transactions`).Scan(&sum)
	return sum, err
}

// SumGoldByTypeSince totals gold for one entry type from a point in time.
func (r *TransactionRepository) SumGoldByTypeSince(ctx context.Context, txType domain.TransactionType, since time.Time) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(gold_amount), 0) FROM transactions
		 WHERE type = $1 AND created_at >= $2`, txType, since).Scan(&sum)
	return sum, err
}

// SumGoldForUser totals signed gold for one user; used to reconcile the
// ledger against the live balance.
func (r *TransactionRepository) SumGoldForUser(ctx context.Context, userID int64) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(gold_amount), 0) FROM transactions WHERE user_id = $1`, userID).Scan(&sum)
	return sum, err
}

func (r *TransactionRepository) scanRows(rows pgx.Rows, withName bool) ([]*domain.Transaction, error) {
	var result []*domain.Transaction

	for rows.Next() {
		var (
			tx       domain.Transaction
			metaJSON []byte
		)

		dest := []any{&tx.ID, &tx.UserID, &tx.Type, &tx.GoldAmount, &tx.UsdCents, &tx.Note, &metaJSON, &tx.CreatedAt}
		if withName {
			dest = append(dest, &tx.DisplayName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &tx.Meta)
		}

		result = append(result, &tx)
	}

	return result, rows.Err()
}
