package repository

import (
	"context"
	"time"

	"aurora_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, display_name, gold_balance, usd_cents, energy, farm_last_claimed_at, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.GoldBalance, &u.UsdCents,
		&u.Energy, &u.FarmLastClaimedAt, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetForUpdate reads the user inside dbTx with a row lock, so a
// check-then-act sequence holds until the transaction commits.
func (r *UserRepository) GetForUpdate(ctx context.Context, dbTx pgx.Tx, id int64) (*domain.User, error) {
	return scanUser(dbTx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

// Create inserts a new user with starting balances and energy.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, display_name, gold_balance, usd_cents, energy, farm_last_claimed_at)
		 VALUES ($1, $2, 0, 0, $3, now())
		 RETURNING `+userColumns,
		u.Username, u.DisplayName, domain.DefaultEnergy,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.GoldBalance, &u.UsdCents,
		&u.Energy, &u.FarmLastClaimedAt, &u.CreatedAt)
}

// TouchFarmClaim stamps the last-claimed time inside a ledger transaction.
func (r *UserRepository) TouchFarmClaim(ctx context.Context, dbTx pgx.Tx, id int64, at time.Time) error {
	_, err := dbTx.Exec(ctx,
		`UPDATE users SET farm_last_claimed_at = $1 WHERE id = $2`, at, id)
	return err
}

// ListRecent returns the newest users for the admin panel.
func (r *UserRepository) ListRecent(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 25
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// TopByGold returns the richest users for admin metrics.
func (r *UserRepository) TopByGold(ctx context.Context, limit int) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY gold_balance DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func collectUsers(rows pgx.Rows) ([]*domain.User, error) {
	var result []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
