package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dormhub/dormledger/internal/domain"
)

const semesterColumns = `
	id, dorm_id, label, starts_on, ends_on, active, allow_historical_edits, created_at
`

// SemesterRepository implements usecase.SemesterRepository on PostgreSQL.
type SemesterRepository struct {
	pool *pgxpool.Pool
}

// NewSemesterRepository creates a new SemesterRepository.
func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{pool: pool}
}

// GetByID retrieves a semester.
func (r *SemesterRepository) GetByID(ctx context.Context, id string) (*domain.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE id = $1`

	sem, err := scanSemester(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSemesterNotFound
		}
		return nil, err
	}

	return sem, nil
}

// Active retrieves the dorm's active semester.
func (r *SemesterRepository) Active(ctx context.Context, dormID string) (*domain.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE dorm_id = $1 AND active`

	sem, err := scanSemester(r.pool.QueryRow(ctx, query, dormID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveSemester
		}
		return nil, err
	}

	return sem, nil
}

// ListByDorm retrieves all of a dorm's semesters in chronological order of
// their start date. Carry-forward chaining depends on this order.
func (r *SemesterRepository) ListByDorm(ctx context.Context, dormID string) ([]*domain.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE dorm_id = $1 ORDER BY starts_on, id`

	rows, err := r.pool.Query(ctx, query, dormID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []*domain.Semester
	for rows.Next() {
		sem, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, sem)
	}

	return semesters, rows.Err()
}

// Create inserts a semester. Only the import reconciler's bootstrap path
// creates semesters through this repository.
func (r *SemesterRepository) Create(ctx context.Context, sem *domain.Semester) error {
	query := `
		INSERT INTO semesters (
			id, dorm_id, label, starts_on, ends_on, active, allow_historical_edits, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		sem.ID,
		sem.DormID,
		sem.Label,
		pgtype.Date{Time: sem.StartsOn, Valid: true},
		pgtype.Date{Time: sem.EndsOn, Valid: true},
		sem.Active,
		sem.AllowHistoricalEdits,
		timeToPgTimestamptz(sem.CreatedAt),
	)

	return err
}

func scanSemester(row rowScanner) (*domain.Semester, error) {
	var (
		sem       domain.Semester
		startsOn  pgtype.Date
		endsOn    pgtype.Date
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&sem.ID,
		&sem.DormID,
		&sem.Label,
		&startsOn,
		&endsOn,
		&sem.Active,
		&sem.AllowHistoricalEdits,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sem.StartsOn = startsOn.Time
	sem.EndsOn = endsOn.Time
	sem.CreatedAt = createdAt.Time

	return &sem, nil
}
