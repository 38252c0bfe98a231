package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing a tutor's availability template.
type Repository interface {
	// GetTemplate returns the tutor's weekly template with each day's ranges
	// sorted by start time. An empty map means no availability is configured.
	GetTemplate(ctx context.Context, tutorID string) (WeeklyAvailability, error)

	// ReplaceTemplate atomically swaps the tutor's whole template. The
	// template is the unit of mutation; partial day updates go through here
	// with the full desired state.
	ReplaceTemplate(ctx context.Context, tutorID string, template WeeklyAvailability) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetTemplate(ctx context.Context, tutorID string) (WeeklyAvailability, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("weekday", "start_minute", "end_minute").
		From("public.tutor_availability").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		OrderBy("weekday", "start_minute").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get template query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get template failed: %w", err)
	}
	defer rows.Close()

	template := WeeklyAvailability{}
	for rows.Next() {
		var weekday, startMin, endMin int
		if err := rows.Scan(&weekday, &startMin, &endMin); err != nil {
			return nil, fmt.Errorf("scan availability range failed: %w", err)
		}
		day := time.Weekday(weekday)
		template[day] = append(template[day], TimeRange{
			Start: ClockTime(startMin),
			End:   ClockTime(endMin),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read template rows failed: %w", err)
	}

	return template, nil
}

func (r *pgxRepository) ReplaceTemplate(ctx context.Context, tutorID string, template WeeklyAvailability) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace template failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("public.tutor_availability").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete template query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete template failed: %w", err)
	}

	if len(template) > 0 {
		insert := psql.Insert("public.tutor_availability").
			Columns("tutor_id", "weekday", "start_minute", "end_minute")
		for day, ranges := range template {
			for _, tr := range ranges {
				insert = insert.Values(tutorID, int(day), int(tr.Start), int(tr.End))
			}
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert template query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert template failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace template failed: %w", err)
	}
	return nil
}
