package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dormhub/dormledger/internal/domain"
)

// RosterRepository implements usecase.OccupantRoster on PostgreSQL.
type RosterRepository struct {
	pool *pgxpool.Pool
}

// NewRosterRepository creates a new RosterRepository.
func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// ActiveByDorm retrieves the dorm's active occupants ordered by name.
func (r *RosterRepository) ActiveByDorm(ctx context.Context, dormID string) ([]*domain.Occupant, error) {
	query := `
		SELECT id, dorm_id, name, room, active, created_at
		FROM occupants
		WHERE dorm_id = $1 AND active
		ORDER BY name, id
	`

	rows, err := r.pool.Query(ctx, query, dormID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occupants []*domain.Occupant
	for rows.Next() {
		occ, err := scanOccupant(rows)
		if err != nil {
			return nil, err
		}
		occupants = append(occupants, occ)
	}

	return occupants, rows.Err()
}

// GetByID retrieves an occupant.
func (r *RosterRepository) GetByID(ctx context.Context, id string) (*domain.Occupant, error) {
	query := `SELECT id, dorm_id, name, room, active, created_at FROM occupants WHERE id = $1`

	occ, err := scanOccupant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOccupantNotFound
		}
		return nil, err
	}

	return occ, nil
}

func scanOccupant(row rowScanner) (*domain.Occupant, error) {
	var (
		occ       domain.Occupant
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&occ.ID, &occ.DormID, &occ.Name, &occ.Room, &occ.Active, &createdAt)
	if err != nil {
		return nil, err
	}

	occ.CreatedAt = createdAt.Time

	return &occ, nil
}
