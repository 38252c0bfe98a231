package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the session. The sessions table carries an exclusion
	// constraint on (tutor_id, tstzrange(start_time, end_time)) filtered to
	// non-cancelled rows; a constraint rejection comes back as
	// ErrSlotConflict. This is the authoritative double-booking guard.
	Create(ctx context.Context, s *Session) error

	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)

	// UpdateTime moves the session's bounds under the same exclusion
	// constraint as Create; overlap with another non-cancelled session for
	// the tutor yields ErrSlotConflict.
	UpdateTime(ctx context.Context, id string, start, end time.Time) (*Session, error)

	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error

	// ListForTutor returns the tutor's non-cancelled sessions intersecting
	// [from, to), ordered by start time.
	ListForTutor(ctx context.Context, tutorID string, from, to time.Time) ([]*Session, error)

	// CountForTutorBetween counts non-cancelled sessions whose start time
	// falls inside [from, to). Used by the weekly limit guard.
	CountForTutorBetween(ctx context.Context, tutorID string, from, to time.Time) (int, error)

	// HasOverlap is the advisory pre-check before a commit; the exclusion
	// constraint remains the authority under concurrency.
	// excludeSessionID ignores the session itself during reschedules.
	HasOverlap(ctx context.Context, tutorID string, start, end time.Time, excludeSessionID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var sessionColumns = []string{
	"s.id", "s.tutor_id", "t.display_name", "s.student_id",
	"s.start_time", "s.end_time", "s.status", "s.payment_status",
	"s.course_id", "s.notes", "s.created_at", "s.updated_at",
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.TutorID, &s.TutorName, &s.StudentID,
		&s.StartTime, &s.EndTime, &s.Status, &s.PaymentStatus,
		&s.CourseID, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// isExclusionViolation reports whether err is the sessions overlap constraint
// firing.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation
}

func (r *pgxRepository) Create(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sessions").
		Columns("tutor_id", "student_id", "start_time", "end_time", "status", "payment_status", "course_id", "notes").
		Values(s.TutorID, s.StudentID, s.StartTime, s.EndTime, s.Status, s.PaymentStatus, s.CourseID, s.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create session query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(sessionColumns...).
		From("public.sessions s").
		Join("public.tutors t ON s.tutor_id = t.id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get session query failed: %w", err)
	}

	s, err := scanSession(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, sessionColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).
		From("public.sessions s").
		Join("public.tutors t ON s.tutor_id = t.id")

	if filter.TutorID != "" {
		query = query.Where(squirrel.Eq{"s.tutor_id": filter.TutorID})
	}
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"s.student_id": filter.StudentID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"s.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"s.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"s.start_time": filter.EndTime})
	}

	orderBy := "s.start_time"
	if filter.SortBy != "" {
		orderBy = "s." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sessions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	var total int

	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.TutorID, &s.TutorName, &s.StudentID,
			&s.StartTime, &s.EndTime, &s.Status, &s.PaymentStatus,
			&s.CourseID, &s.Notes, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan session failed: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, total, nil
}

func (r *pgxRepository) UpdateTime(ctx context.Context, id string, start, end time.Time) (*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sessions").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update session time query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("update session time failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	return r.updateColumn(ctx, id, "status", string(status))
}

func (r *pgxRepository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	return r.updateColumn(ctx, id, "payment_status", string(status))
}

func (r *pgxRepository) updateColumn(ctx context.Context, id, column, value string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sessions").
		Set(column, value).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update session %s query failed: %w", column, err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session %s failed: %w", column, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListForTutor(ctx context.Context, tutorID string, from, to time.Time) ([]*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(sessionColumns...).
		From("public.sessions s").
		Join("public.tutors t ON s.tutor_id = t.id").
		Where(squirrel.Eq{"s.tutor_id": tutorID}).
		Where(squirrel.NotEq{"s.status": StatusCancelled}).
		Where(squirrel.Lt{"s.start_time": to}).
		Where(squirrel.Gt{"s.end_time": from}).
		OrderBy("s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tutor sessions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tutor sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session failed: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tutor session rows failed: %w", err)
	}

	return sessions, nil
}

func (r *pgxRepository) CountForTutorBetween(ctx context.Context, tutorID string, from, to time.Time) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.sessions").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count sessions query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sessions failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, tutorID string, start, end time.Time, excludeSessionID string) (bool, error) {
	// Overlap: (NewStart < ExistingEnd) AND (NewEnd > ExistingStart),
	// cancelled sessions never block.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.sessions").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeSessionID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeSessionID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
