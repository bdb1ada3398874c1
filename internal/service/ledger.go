package service

import (
	"context"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/repository"
	"aurora_backend/internal/ws"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var ledgerEntries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Ledger entries appended, by transaction type",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(ledgerEntries)
}

// LedgerEntry describes one atomic balance mutation plus its audit record.
//
// GoldDelta / UsdDeltaCents / EnergyDelta mutate the user's balances.
// UsdValueCents is what gets recorded on the transaction row: the USD
// valuation at the rate in effect, which is not always the balance delta
// (a shop purchase records its valuation but moves no USD).
type LedgerEntry struct {
	UserID        int64
	GoldDelta     int64
	UsdDeltaCents int64
	EnergyDelta   int
	UsdValueCents int64
	Type          domain.TransactionType
	Note          string
	Meta          map[string]interface{}
}

// LedgerService is the single write path for balances: it applies the
// deltas to the user row and appends exactly one transaction record,
// both inside the caller's database transaction, so they commit or roll
// back together.
type LedgerService struct {
	db           *pgxpool.Pool
	transactions *repository.TransactionRepository
	feed         *ws.Feed
}

func NewLedgerService(db *pgxpool.Pool, feed *ws.Feed) *LedgerService {
	return &LedgerService{
		db:           db,
		transactions: repository.NewTransactionRepository(db),
		feed:         feed,
	}
}

// ApplyWithTx mutates balances and appends the ledger row inside dbTx.
// The UPDATE carries its own non-negative guards as a backstop: callers are
// expected to pre-check against a row locked FOR UPDATE, but a violated
// guard still aborts the whole entry with ErrInsufficientFunds rather
// than ever committing a negative balance. Energy is clamped at the cap.
func (s *LedgerService) ApplyWithTx(ctx context.Context, dbTx pgx.Tx, entry LedgerEntry) (*domain.User, *domain.Transaction, error) {
	var u domain.User
	err := dbTx.QueryRow(ctx,
		`UPDATE users SET
			gold_balance = gold_balance + $1,
			usd_cents = usd_cents + $2,
			energy = LEAST(energy + $3, $4)
		 WHERE id = $5
		   AND gold_balance + $1 >= 0
		   AND usd_cents + $2 >= 0
		   AND energy + $3 >= 0
		 RETURNING id, username, display_name, gold_balance, usd_cents, energy, farm_last_claimed_at, created_at`,
		entry.GoldDelta, entry.UsdDeltaCents, entry.EnergyDelta, domain.MaxEnergy, entry.UserID,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.GoldBalance, &u.UsdCents,
		&u.Energy, &u.FarmLastClaimedAt, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Either the user is gone or a guard tripped; the caller's
			// locked pre-check makes the former the only surprise.
			var exists bool
			_ = dbTx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, entry.UserID).Scan(&exists)
			if !exists {
				return nil, nil, ErrUserNotFound
			}
			return nil, nil, ErrInsufficientFunds
		}
		return nil, nil, err
	}

	txRecord := &domain.Transaction{
		UserID:     entry.UserID,
		Type:       entry.Type,
		GoldAmount: entry.GoldDelta,
		UsdCents:   entry.UsdValueCents,
		Note:       entry.Note,
		Meta:       entry.Meta,
	}
	if err := s.transactions.CreateWithTx(ctx, dbTx, txRecord); err != nil {
		return nil, nil, err
	}

	ledgerEntries.WithLabelValues(string(entry.Type)).Inc()
	return &u, txRecord, nil
}

// Announce publishes a committed ledger entry to the admin live feed.
// Call it after commit only; a rolled-back entry must never be seen.
func (s *LedgerService) Announce(txRecord *domain.Transaction) {
	if s.feed != nil && txRecord != nil {
		s.feed.Broadcast(txRecord)
	}
}

// History returns the user's recent ledger entries.
func (s *LedgerService) History(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactions.GetByUserID(ctx, userID, limit)
}
