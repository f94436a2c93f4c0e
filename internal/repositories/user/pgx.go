package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/repositories"
	"github.com/orgball2608/piazza/pkg/logger"
)

type PgxRepository struct {
	pool   *pgxpool.Pool
	clock  clockwork.Clock
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, clock clockwork.Clock, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		clock:  clock,
		logger: logger.WithComponent("UserRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	user.ID = uuid.NewString()
	user.CreatedAt = r.clock.Now().UTC().Truncate(time.Microsecond)

	query, args, err := repositories.SqBuilder.
		Insert("users").
		Columns("id", "name", "email", "password_hash", "created_at").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.UniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (r *PgxRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PgxRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *PgxRepository) getOne(ctx context.Context, where sq.Eq) (*domain.User, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "name", "email", "password_hash", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var user domain.User
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
