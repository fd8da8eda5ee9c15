package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/infrastructure/metrics"
)

// EntryUseCase records, voids, and lists ledger entries. It is the single
// write path for individual transactions; batch and import writes go through
// their own use cases but land in the same store under the same invariants.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	auditRepo AuditRepository
	idGen     IDGenerator
	retrier   TxRetrier
	metrics   *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		auditRepo: auditRepo,
		idGen:     idGen,
	}
}

// WithRetrier enables retry of the void transaction on transient database
// errors. Without it a deadlock surfaces to the caller.
func (uc *EntryUseCase) WithRetrier(r TxRetrier) *EntryUseCase {
	uc.retrier = r
	return uc
}

// WithMetrics enables counter updates on successful writes.
func (uc *EntryUseCase) WithMetrics(m *metrics.Metrics) *EntryUseCase {
	uc.metrics = m
	return uc
}

// RecordTransactionInput represents input for recording a single entry.
type RecordTransactionInput struct {
	DormID     string
	Ledger     domain.Ledger
	Type       domain.EntryType
	OccupantID string
	Amount     decimal.Decimal
	PostedAt   *time.Time
	SemesterID string
	Method     string
	Note       string
	Actor      string
}

// RecordTransaction validates and appends one entry. Validation failures
// reject the entry before any write occurs.
func (uc *EntryUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Entry, error) {
	now := time.Now().UTC()

	postedAt := now
	if input.PostedAt != nil {
		postedAt = input.PostedAt.UTC()
	}

	entry := &domain.Entry{
		ID:         uc.idGen.Generate(),
		DormID:     input.DormID,
		Ledger:     input.Ledger,
		Type:       input.Type,
		OccupantID: input.OccupantID,
		Amount:     input.Amount,
		PostedAt:   postedAt,
		SemesterID: input.SemesterID,
		Method:     input.Method,
		Note:       input.Note,
		CreatedBy:  input.Actor,
		CreatedAt:  now,
	}

	if err := domain.ValidateEntry(entry); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesRecorded.WithLabelValues(string(entry.Ledger), string(entry.Type)).Inc()
		uc.metrics.EntryAmount.Observe(entry.Amount.InexactFloat64())
	}

	return entry, nil
}

// VoidEntryInput represents input for voiding an entry.
type VoidEntryInput struct {
	EntryID string
	Reason  string
	Actor   string
}

// VoidEntry transitions an entry from posted to voided, recording actor and
// reason. The void and its audit row commit in one transaction. Voiding an
// already-voided entry is a conflict.
func (uc *EntryUseCase) VoidEntry(ctx context.Context, input VoidEntryInput) (*domain.Entry, error) {
	if err := domain.ValidateVoidReason(input.Reason); err != nil {
		return nil, err
	}

	before, err := uc.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}
	if before.Voided() {
		return nil, domain.ErrEntryAlreadyVoided
	}

	now := time.Now().UTC()

	commit := func() error {
		return uc.voidTx(ctx, input, before, now)
	}
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, commit)
	} else {
		err = commit()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesVoided.Inc()
	}

	voided := *before
	voided.VoidedAt = &now
	voided.VoidedBy = input.Actor
	voided.VoidReason = input.Reason

	return &voided, nil
}

// voidTx runs the void and its audit row in one transaction.
func (uc *EntryUseCase) voidTx(ctx context.Context, input VoidEntryInput, before *domain.Entry, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.entryRepo.Void(ctx, tx, input.EntryID, input.Actor, input.Reason, now); err != nil {
		return err
	}

	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      input.Actor,
		Action:       string(domain.AuditActionEntryVoid),
		ResourceType: "entry",
		ResourceID:   input.EntryID,
		DormID:       before.DormID,
		BeforeState:  domain.MarshalState(before),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListEntries queries entries for the export and presentation collaborators.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.entryRepo.Query(ctx, filter)
}

// GetEntry retrieves a single entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}
