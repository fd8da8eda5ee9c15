package usecase

import (
	"context"
	"time"

	"github.com/dormhub/dormledger/internal/domain"
)

// EntryFilter narrows a ledger entry query. Zero values mean "no filter".
// Voided entries are excluded unless IncludeVoided is set.
type EntryFilter struct {
	DormID        string
	OccupantID    string
	SemesterID    string
	Ledgers       []domain.Ledger
	Types         []domain.EntryType
	From          *time.Time
	To            *time.Time
	IncludeVoided bool
	Limit         int
	Offset        int
}

// EntryRepository is the ledger entry store contract. Entries are append-only
// facts; voiding is the only mutation and deletion never happens.
type EntryRepository interface {
	Append(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	// Void marks an entry voided. It fails with domain.ErrEntryAlreadyVoided
	// when the entry is already voided and domain.ErrEntryNotFound when it
	// does not exist.
	Void(ctx context.Context, tx Transaction, id, actor, reason string, at time.Time) error
	Query(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
	// ImportKeys returns the set of import keys already present on the
	// dorm's entries.
	ImportKeys(ctx context.Context, dormID string) (map[string]struct{}, error)
	// BatchChargedOccupants returns the occupants that already hold a
	// non-voided charge tagged with the given batch.
	BatchChargedOccupants(ctx context.Context, dormID, title, eventID string) (map[string]struct{}, error)
}

// SemesterRepository defines data access for the semester registry.
type SemesterRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Semester, error)
	Active(ctx context.Context, dormID string) (*domain.Semester, error)
	// ListByDorm returns the dorm's semesters ordered by start date.
	ListByDorm(ctx context.Context, dormID string) ([]*domain.Semester, error)
	// Create exists only for import bootstrap terms; semesters are otherwise
	// administered outside the engine.
	Create(ctx context.Context, semester *domain.Semester) error
}

// ExpenseRepository defines data access for expense records.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	SetStatus(ctx context.Context, id string, status domain.ExpenseStatus, actor string, at time.Time) error
	ListBySemester(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error)
	// ImportMarkedNotes returns the notes of expenses carrying an embedded
	// import marker, for duplicate detection on the expense side.
	ImportMarkedNotes(ctx context.Context, dormID string) ([]string, error)
}

// OccupantRoster supplies the dorm's occupants. The roster is owned by an
// external collaborator; the engine only reads it.
type OccupantRoster interface {
	ActiveByDorm(ctx context.Context, dormID string) ([]*domain.Occupant, error)
	GetByID(ctx context.Context, id string) (*domain.Occupant, error)
}

// DormSettings supplies per-dorm engine configuration.
type DormSettings interface {
	// RequiredLedgers returns the ledgers that must be settled for
	// clearance. Defaults to maintenance and fines when the dorm has no
	// explicit configuration.
	RequiredLedgers(ctx context.Context, dormID string) ([]domain.Ledger, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// TxRetrier re-runs an operation when it fails with a transient error.
type TxRetrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
