package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/infrastructure/metrics"
)

// BatchUseCase creates contribution charges for a cohort of occupants.
type BatchUseCase struct {
	entryRepo EntryRepository
	roster    OccupantRoster
	auditRepo AuditRepository
	idGen     IDGenerator
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewBatchUseCase creates a new BatchUseCase.
func NewBatchUseCase(
	entryRepo EntryRepository,
	roster OccupantRoster,
	auditRepo AuditRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *BatchUseCase {
	return &BatchUseCase{
		entryRepo: entryRepo,
		roster:    roster,
		auditRepo: auditRepo,
		idGen:     idGen,
		logger:    logger,
	}
}

// WithMetrics enables counter updates on batch runs.
func (uc *BatchUseCase) WithMetrics(m *metrics.Metrics) *BatchUseCase {
	uc.metrics = m
	return uc
}

// CreateContributionBatchInput defines the cohort and the charge.
type CreateContributionBatchInput struct {
	DormID     string
	SemesterID string
	Title      string
	EventID    string
	Amount     decimal.Decimal
	Deadline   *time.Time

	// IncludeAlreadyCharged disables the skip check; every cohort occupant
	// is charged even if a charge with the same tag exists.
	IncludeAlreadyCharged bool

	Actor string
}

// BatchResult tallies a batch run. The run is not atomic across occupants:
// entries already written stay written, and FailedOccupants lists the rest
// so the caller can re-run safely with the skip check enabled.
type BatchResult struct {
	CohortSize      int
	Charged         int
	SkippedExisting int
	Failed          int
	FailedOccupants []string
}

// CreateContributionBatch appends exactly one charge per cohort occupant,
// tagged with the batch title and event. With IncludeAlreadyCharged off the
// run is idempotent per (batch, occupant): re-running after a partial
// failure only charges occupants the first run missed. Two concurrent runs
// of the same batch can still double-charge; batches are expected to be run
// by one authorized actor at a time.
func (uc *BatchUseCase) CreateContributionBatch(ctx context.Context, input CreateContributionBatchInput) (*BatchResult, error) {
	if input.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	occupants, err := uc.roster.ActiveByDorm(ctx, input.DormID)
	if err != nil {
		return nil, err
	}

	alreadyCharged := map[string]struct{}{}
	if !input.IncludeAlreadyCharged {
		alreadyCharged, err = uc.entryRepo.BatchChargedOccupants(ctx, input.DormID, input.Title, input.EventID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	tag := &domain.BatchTag{
		Title:    input.Title,
		EventID:  input.EventID,
		Deadline: input.Deadline,
	}

	result := &BatchResult{CohortSize: len(occupants)}

	for _, occ := range occupants {
		if _, ok := alreadyCharged[occ.ID]; ok {
			result.SkippedExisting++
			continue
		}

		entry := &domain.Entry{
			ID:         uc.idGen.Generate(),
			DormID:     input.DormID,
			Ledger:     domain.LedgerContributions,
			Type:       domain.EntryTypeCharge,
			OccupantID: occ.ID,
			Amount:     input.Amount,
			PostedAt:   now,
			SemesterID: input.SemesterID,
			Note:       input.Title,
			Metadata:   domain.Metadata{Batch: tag},
			CreatedBy:  input.Actor,
			CreatedAt:  now,
		}

		if err := domain.ValidateEntry(entry); err != nil {
			return nil, err
		}

		if err := uc.entryRepo.Append(ctx, entry); err != nil {
			result.Failed++
			result.FailedOccupants = append(result.FailedOccupants, occ.ID)
			uc.logger.Error().
				Err(err).
				Str("occupant_id", occ.ID).
				Str("batch_title", input.Title).
				Msg("batch charge insert failed")
			continue
		}

		result.Charged++
	}

	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      input.Actor,
		Action:       string(domain.AuditActionBatchRun),
		ResourceType: "batch",
		ResourceID:   input.Title,
		DormID:       input.DormID,
		AfterState:   domain.MarshalState(result),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}
	if result.Failed > 0 {
		audit.Status = string(domain.AuditStatusFailure)
	}
	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to write batch audit log")
	}

	if uc.metrics != nil {
		uc.metrics.BatchRuns.Inc()
		uc.metrics.BatchCharges.Add(float64(result.Charged))
		uc.metrics.BatchSkips.Add(float64(result.SkippedExisting))
		uc.metrics.BatchFailures.Add(float64(result.Failed))
		uc.metrics.BatchRunDuration.Observe(time.Since(now).Seconds())
	}

	return result, nil
}
