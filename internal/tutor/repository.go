package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing tutor data from storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Tutor, error)
	Update(ctx context.Context, t *Tutor) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Tutor, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "display_name", "hourly_rate_cents", "max_weekly_sessions",
		"created_at", "updated_at",
	).
		From("public.tutors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tutor query failed: %w", err)
	}

	var t Tutor
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.DisplayName, &t.HourlyRateCents, &t.MaxWeeklySessions,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tutor failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Tutor) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.tutors").
		Set("hourly_rate_cents", t.HourlyRateCents).
		Set("max_weekly_sessions", t.MaxWeeklySessions).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update tutor query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tutor failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
