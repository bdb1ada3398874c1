package service

import (
	"context"
	"errors"
	"strings"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountService handles login and registration. There is no password:
// identity is the case-normalized username, per the game's lightweight
// session model.
type AccountService struct {
	db    *pgxpool.Pool
	users *repository.UserRepository
}

func NewAccountService(db *pgxpool.Pool) *AccountService {
	return &AccountService{
		db:    db,
		users: repository.NewUserRepository(db),
	}
}

// NormalizeUsername lowercases and trims a client-supplied username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *AccountService) Login(ctx context.Context, username string) (*domain.User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Register(ctx context.Context, username, displayName string) (*domain.User, error) {
	username = NormalizeUsername(username)
	displayName = strings.TrimSpace(displayName)
	if username == "" {
		return nil, ErrInvalidInput
	}
	if displayName == "" {
		displayName = username
	}

	user := &domain.User{
		Username:    username,
		DisplayName: displayName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}
