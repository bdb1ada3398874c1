package repository

import (
	"context"
	"time"

	"aurora_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BattleRepository struct {
	db *pgxpool.Pool
}

func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Create inserts a battle inside the entry transaction.
func (r *BattleRepository) Create(ctx context.Context, dbTx pgx.Tx, b *domain.Battle) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO battles (mode, entry_gold, reward_gold, reward_usd_cents)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, started_at`,
		b.Mode, b.EntryGold, b.RewardGold, b.RewardUsdCents,
	).Scan(&b.ID, &b.StartedAt)
}

// Resolve stamps the resolution time.
func (r *BattleRepository) Resolve(ctx context.Context, dbTx pgx.Tx, battleID int64, at time.Time) error {
	_, err := dbTx.Exec(ctx,
		`UPDATE battles SET resolved_at = $1 WHERE id = $2`, at, battleID)
	return err
}

// AddParticipation records the user's outcome.
func (r *BattleRepository) AddParticipation(ctx context.Context, dbTx pgx.Tx, p *domain.BattleParticipation) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO battle_participations (battle_id, user_id, result)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		p.BattleID, p.UserID, p.Result,
	).Scan(&p.ID)
}

// ListRecent returns the newest battles with their participants.
func (r *BattleRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Battle, map[int64][]domain.BattleParticipation, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, mode, entry_gold, reward_gold, reward_usd_cents, started_at, resolved_at
		 FROM battles ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var battles []*domain.Battle
	var ids []int64
	for rows.Next() {
		var b domain.Battle
		if err := rows.Scan(&b.ID, &b.Mode, &b.EntryGold, &b.RewardGold,
			&b.RewardUsdCents, &b.StartedAt, &b.ResolvedAt); err != nil {
			return nil, nil, err
		}
		battles = append(battles, &b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	participants := make(map[int64][]domain.BattleParticipation)
	if len(ids) == 0 {
		return battles, participants, nil
	}

	prows, err := r.db.Query(ctx,
		`SELECT p.id, p.battle_id, p.user_id, p.result, u.display_name
		 FROM battle_participations p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.battle_id = ANY($1)`, ids)
	if err != nil {
		return nil, nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var p domain.BattleParticipation
		if err := prows.Scan(&p.ID, &p.BattleID, &p.UserID, &p.Result, &p.DisplayName); err != nil {
			return nil, nil, err
		}
		participants[p.BattleID] = append(participants[p.BattleID], p)
	}
	return battles, participants, prows.Err()
}
