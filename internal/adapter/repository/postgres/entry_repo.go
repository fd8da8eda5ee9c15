package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

const entryColumns = `
	id, dorm_id, ledger, entry_type, occupant_id, amount, posted_at,
	semester_id, method, note, metadata, created_by, created_at,
	voided_at, voided_by, void_reason
`

// EntryRepository implements usecase.EntryRepository on PostgreSQL. Entries
// are append-only: there is no UPDATE path except the void columns.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Append inserts a new entry.
func (r *EntryRepository) Append(ctx context.Context, entry *domain.Entry) error {
	metadata, err := marshalMetadata(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal entry metadata: %w", err)
	}

	amount, err := decimalToNumeric(entry.Amount)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ledger_entries (
			id, dorm_id, ledger, entry_type, occupant_id, amount, posted_at,
			semester_id, method, note, metadata, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.pool.Exec(ctx, query,
		entry.ID,
		entry.DormID,
		string(entry.Ledger),
		string(entry.Type),
		entry.OccupantID,
		amount,
		timeToPgTimestamptz(entry.PostedAt),
		entry.SemesterID,
		entry.Method,
		entry.Note,
		metadata,
		entry.CreatedBy,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves a single entry.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// Void marks an entry voided inside the caller's transaction. The WHERE
// clause guards the posted-to-voided transition: a row already voided, or
// voided concurrently, matches nothing and the conflict surfaces here.
func (r *EntryRepository) Void(ctx context.Context, tx usecase.Transaction, id, actor, reason string, at time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE ledger_entries
		SET voided_at = $1, voided_by = $2, void_reason = $3
		WHERE id = $4 AND voided_at IS NULL
	`

	tag, err := pgxTx.Exec(ctx, query, timeToPgTimestamptz(at), actor, reason, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := pgxTx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrEntryNotFound
		}
		return domain.ErrEntryAlreadyVoided
	}

	return nil
}

// Query retrieves entries matching the filter, newest posted first.
func (r *EntryRepository) Query(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE 1=1`
	args := []any{}

	if !filter.IncludeVoided {
		query += ` AND voided_at IS NULL`
	}
	if filter.DormID != "" {
		args = append(args, filter.DormID)
		query += fmt.Sprintf(` AND dorm_id = $%d`, len(args))
	}
	if filter.OccupantID != "" {
		args = append(args, filter.OccupantID)
		query += fmt.Sprintf(` AND occupant_id = $%d`, len(args))
	}
	if filter.SemesterID != "" {
		args = append(args, filter.SemesterID)
		query += fmt.Sprintf(` AND semester_id = $%d`, len(args))
	}
	if len(filter.Ledgers) > 0 {
		args = append(args, ledgerStrings(filter.Ledgers))
		query += fmt.Sprintf(` AND ledger = ANY($%d)`, len(args))
	}
	if len(filter.Types) > 0 {
		args = append(args, typeStrings(filter.Types))
		query += fmt.Sprintf(` AND entry_type = ANY($%d)`, len(args))
	}
	if filter.From != nil {
		args = append(args, timeToPgTimestamptz(*filter.From))
		query += fmt.Sprintf(` AND posted_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, timeToPgTimestamptz(*filter.To))
		query += fmt.Sprintf(` AND posted_at <= $%d`, len(args))
	}

	query += ` ORDER BY posted_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// ImportKeys returns every per-row import key recorded on the dorm's
// entries, voided included: a voided import stays a known key so
// re-importing it stays a no-op. An entry folded from several source rows
// carries one key per row.
func (r *EntryRepository) ImportKeys(ctx context.Context, dormID string) (map[string]struct{}, error) {
	query := `
		SELECT jsonb_array_elements_text(metadata->'import'->'import_keys')
		FROM ledger_entries
		WHERE dorm_id = $1 AND metadata ? 'import'
	`

	rows, err := r.pool.Query(ctx, query, dormID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if key != "" {
			keys[key] = struct{}{}
		}
	}

	return keys, rows.Err()
}

// BatchChargedOccupants returns occupants holding a posted charge tagged
// with the given batch identity.
func (r *EntryRepository) BatchChargedOccupants(ctx context.Context, dormID, title, eventID string) (map[string]struct{}, error) {
	query := `
		SELECT occupant_id
		FROM ledger_entries
		WHERE dorm_id = $1
		  AND entry_type = 'charge'
		  AND voided_at IS NULL
		  AND metadata->'batch'->>'title' = $2
		  AND COALESCE(metadata->'batch'->>'event_id', '') = $3
	`

	rows, err := r.pool.Query(ctx, query, dormID, title, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupants := make(map[string]struct{})
	for rows.Next() {
		var occupantID string
		if err := rows.Scan(&occupantID); err != nil {
			return nil, err
		}
		occupants[occupantID] = struct{}{}
	}

	return occupants, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var (
		entry      domain.Entry
		ledger     string
		entryType  string
		amount     pgtype.Numeric
		postedAt   pgtype.Timestamptz
		metadata   []byte
		createdAt  pgtype.Timestamptz
		voidedAt   pgtype.Timestamptz
		voidedBy   *string
		voidReason *string
	)

	err := row.Scan(
		&entry.ID,
		&entry.DormID,
		&ledger,
		&entryType,
		&entry.OccupantID,
		&amount,
		&postedAt,
		&entry.SemesterID,
		&entry.Method,
		&entry.Note,
		&metadata,
		&entry.CreatedBy,
		&createdAt,
		&voidedAt,
		&voidedBy,
		&voidReason,
	)
	if err != nil {
		return nil, err
	}

	entry.Ledger = domain.Ledger(ledger)
	entry.Type = domain.EntryType(entryType)
	entry.Amount = numericToDecimal(amount)
	entry.PostedAt = postedAt.Time
	entry.CreatedAt = createdAt.Time

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal entry metadata: %w", err)
		}
	}

	if voidedAt.Valid {
		t := voidedAt.Time
		entry.VoidedAt = &t
	}
	if voidedBy != nil {
		entry.VoidedBy = *voidedBy
	}
	if voidReason != nil {
		entry.VoidReason = *voidReason
	}

	return &entry, nil
}

func marshalMetadata(m domain.Metadata) ([]byte, error) {
	if m.Empty() {
		return []byte(`{}`), nil
	}
	return json.Marshal(m)
}

func ledgerStrings(ledgers []domain.Ledger) []string {
	out := make([]string, len(ledgers))
	for i, l := range ledgers {
		out[i] = string(l)
	}
	return out
}

func typeStrings(types []domain.EntryType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func decimalToNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var n pgtype.Numeric

	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("encode numeric %q: %w", d.String(), err)
	}

	return n, nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
