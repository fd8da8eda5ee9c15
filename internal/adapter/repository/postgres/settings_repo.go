package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dormhub/dormledger/internal/domain"
)

// SettingsRepository implements usecase.DormSettings on PostgreSQL.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// defaultRequiredLedgers applies when the dorm has no settings row. The
// contributions ledger stays informational unless a dorm opts it in.
var defaultRequiredLedgers = []domain.Ledger{domain.LedgerMaintenance, domain.LedgerFines}

// RequiredLedgers returns the ledgers that must be settled for clearance.
func (r *SettingsRepository) RequiredLedgers(ctx context.Context, dormID string) ([]domain.Ledger, error) {
	query := `SELECT contributions_required FROM dorm_settings WHERE dorm_id = $1`

	var contributionsRequired bool
	err := r.pool.QueryRow(ctx, query, dormID).Scan(&contributionsRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultRequiredLedgers, nil
		}
		return nil, err
	}

	ledgers := append([]domain.Ledger(nil), defaultRequiredLedgers...)
	if contributionsRequired {
		ledgers = append(ledgers, domain.LedgerContributions)
	}

	return ledgers, nil
}
