package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/infrastructure/metrics"
)

// RowKind says which side of the books an import row lands on.
type RowKind string

const (
	RowKindInflow  RowKind = "inflow"
	RowKindExpense RowKind = "expense"
)

// ImportRow is one normalized external transaction row. Parsing source
// documents is the import-source collaborator's job; the reconciler only
// sees rows in this shape.
type ImportRow struct {
	Kind        RowKind
	Source      string
	Counterpart string
	Note        string
	Date        time.Time
	Amount      decimal.Decimal
}

// ImportInput is one reconciler run.
type ImportInput struct {
	DormID string
	// SemesterID pins all rows to one term. Empty means resolve per row by
	// date, bootstrapping a term when none covers the earliest row.
	SemesterID string
	Rows       []ImportRow
	// Legacy marks created entries as already counted in a prior closing
	// balance, excluding them from carry-forward inflow.
	Legacy bool
	Actor  string
}

// ImportSummary tallies a run. Duplicates and invalid rows are never hard
// failures: the run is designed to be re-run without operator intervention.
type ImportSummary struct {
	RowsReceived      int
	RowsDropped       int
	GroupsFormed      int
	SkippedDuplicates int
	EntriesCreated    int
	ExpensesCreated   int
}

// ImportUseCase ingests external transaction batches idempotently.
type ImportUseCase struct {
	entryRepo    EntryRepository
	expenseRepo  ExpenseRepository
	semesterRepo SemesterRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	entryRepo EntryRepository,
	expenseRepo ExpenseRepository,
	semesterRepo SemesterRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		entryRepo:    entryRepo,
		expenseRepo:  expenseRepo,
		semesterRepo: semesterRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

// WithMetrics enables counter updates on reconciler runs.
func (uc *ImportUseCase) WithMetrics(m *metrics.Metrics) *ImportUseCase {
	uc.metrics = m
	return uc
}

// importGroup is the aggregation of all rows sharing a normalized source key
// within one run: amounts sum, the earliest date wins, notes concatenate,
// and every row's fingerprint is retained. Pre-aggregated
// spreadsheet exports split one record across inconsistent raw lines;
// grouping folds them back together.
type importGroup struct {
	kind     RowKind
	source   string
	notes    []string
	date     time.Time
	amount   decimal.Decimal
	rowCount int
	keys     []string
}

// Run executes one reconciler pass. Every source row is fingerprinted on
// its own and checked against the keys already present on ledger entries
// and expense notes, so re-running the same input is a no-op and a re-export
// containing both old and new rows ingests only the new ones.
func (uc *ImportUseCase) Run(ctx context.Context, input ImportInput) (*ImportSummary, error) {
	summary := &ImportSummary{RowsReceived: len(input.Rows)}

	existing, err := uc.existingKeys(ctx, input.DormID)
	if err != nil {
		return nil, err
	}

	groups := uc.groupRows(input.Rows, summary, existing)
	summary.GroupsFormed = len(groups)

	now := time.Now().UTC()

	for _, g := range groups {
		note := strings.Join(g.notes, "; ")

		semesterID, err := uc.resolveSemester(ctx, input, g.date, now)
		if err != nil {
			return nil, err
		}

		switch g.kind {
		case RowKindInflow:
			entry := &domain.Entry{
				ID:         uc.idGen.Generate(),
				DormID:     input.DormID,
				Ledger:     domain.LedgerContributions,
				Type:       domain.EntryTypePayment,
				Amount:     g.amount,
				PostedAt:   g.date,
				SemesterID: semesterID,
				Method:     "import",
				Note:       note,
				Metadata: domain.Metadata{Import: &domain.ImportProvenance{
					Keys:       g.keys,
					Source:     g.source,
					RowCount:   g.rowCount,
					Legacy:     input.Legacy,
					ImportedAt: now,
				}},
				CreatedBy: input.Actor,
				CreatedAt: now,
			}
			if err := domain.ValidateEntry(entry); err != nil {
				return nil, fmt.Errorf("import group %q: %w", g.source, err)
			}
			if err := uc.entryRepo.Append(ctx, entry); err != nil {
				return nil, fmt.Errorf("import group %q: %w", g.source, err)
			}
			summary.EntriesCreated++

		case RowKindExpense:
			expenseNote := note
			for _, k := range g.keys {
				if expenseNote != "" {
					expenseNote += " "
				}
				expenseNote += domain.ExpenseImportMarker(k)
			}

			expense := &domain.Expense{
				ID:         uc.idGen.Generate(),
				DormID:     input.DormID,
				SemesterID: semesterID,
				Title:      g.source,
				Amount:     g.amount,
				Status:     domain.ExpenseStatusApproved,
				Note:       expenseNote,
				SpentAt:    g.date,
				RecordedBy: input.Actor,
				CreatedAt:  now,
				ApprovedBy: input.Actor,
				ApprovedAt: &now,
			}
			if err := uc.expenseRepo.Create(ctx, expense); err != nil {
				return nil, fmt.Errorf("import group %q: %w", g.source, err)
			}
			summary.ExpensesCreated++
		}
	}

	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      input.Actor,
		Action:       string(domain.AuditActionImportRun),
		ResourceType: "import",
		ResourceID:   input.DormID,
		DormID:       input.DormID,
		AfterState:   domain.MarshalState(summary),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}
	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to write import audit log")
	}

	uc.logger.Info().
		Str("dorm_id", input.DormID).
		Int("rows", summary.RowsReceived).
		Int("dropped", summary.RowsDropped).
		Int("skipped", summary.SkippedDuplicates).
		Int("entries", summary.EntriesCreated).
		Int("expenses", summary.ExpensesCreated).
		Msg("import run completed")

	if uc.metrics != nil {
		uc.metrics.ImportRuns.Inc()
		uc.metrics.ImportRowsDropped.Add(float64(summary.RowsDropped))
		uc.metrics.ImportSkipped.Add(float64(summary.SkippedDuplicates))
		uc.metrics.ImportEntries.Add(float64(summary.EntriesCreated))
		uc.metrics.ImportExpenses.Add(float64(summary.ExpensesCreated))
		uc.metrics.ImportDuration.Observe(time.Since(now).Seconds())
	}

	return summary, nil
}

// groupRows drops invalid rows, skips rows whose fingerprint is already on
// the books, and aggregates the survivors by kind and normalized source key.
// Dropped and skipped rows are counted, not errored. Each surviving row's
// fingerprint is added to existing so an exact duplicate later in the same
// batch is skipped too.
func (uc *ImportUseCase) groupRows(rows []ImportRow, summary *ImportSummary, existing map[string]struct{}) []*importGroup {
	byKey := make(map[string]*importGroup)
	order := make([]string, 0)

	for _, row := range rows {
		if !row.Amount.IsPositive() || row.Date.IsZero() || strings.TrimSpace(row.Source) == "" {
			summary.RowsDropped++
			continue
		}
		if row.Kind != RowKindInflow && row.Kind != RowKindExpense {
			summary.RowsDropped++
			continue
		}

		signed := row.Amount
		if row.Kind == RowKindInflow {
			signed = row.Amount.Neg()
		}
		rowKey := domain.ImportKey(row.Source, row.Counterpart, row.Note, row.Date, signed)
		if _, ok := existing[rowKey]; ok {
			summary.SkippedDuplicates++
			continue
		}
		existing[rowKey] = struct{}{}

		key := string(row.Kind) + "|" + domain.NormalizeImportField(row.Source)
		g, ok := byKey[key]
		if !ok {
			g = &importGroup{
				kind:   row.Kind,
				source: row.Source,
				date:   row.Date,
				amount: decimal.Zero,
			}
			byKey[key] = g
			order = append(order, key)
		}

		g.amount = g.amount.Add(row.Amount)
		g.rowCount++
		g.keys = append(g.keys, rowKey)
		if row.Date.Before(g.date) {
			g.date = row.Date
		}
		if n := strings.TrimSpace(row.Note); n != "" {
			g.notes = append(g.notes, n)
		}
	}

	groups := make([]*importGroup, 0, len(byKey))
	for _, key := range order {
		groups = append(groups, byKey[key])
	}

	// Deterministic processing order regardless of input shuffling.
	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].date.Equal(groups[j].date) {
			return groups[i].date.Before(groups[j].date)
		}
		return groups[i].source < groups[j].source
	})

	return groups
}

// existingKeys collects import keys from both sides of the books: entry
// metadata and the free-text markers inside expense notes.
func (uc *ImportUseCase) existingKeys(ctx context.Context, dormID string) (map[string]struct{}, error) {
	keys, err := uc.entryRepo.ImportKeys(ctx, dormID)
	if err != nil {
		return nil, err
	}

	notes, err := uc.expenseRepo.ImportMarkedNotes(ctx, dormID)
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		for _, key := range domain.ParseExpenseImportKeys(note) {
			keys[key] = struct{}{}
		}
	}

	return keys, nil
}

// resolveSemester finds the term a row belongs to. A pinned semester wins;
// otherwise the row's date picks the covering term. When the dorm has no
// covering term the run bootstraps one spanning the row's half-year, which
// is the one place the engine ever creates a semester on its own.
func (uc *ImportUseCase) resolveSemester(ctx context.Context, input ImportInput, date, now time.Time) (string, error) {
	if input.SemesterID != "" {
		return input.SemesterID, nil
	}

	semesters, err := uc.semesterRepo.ListByDorm(ctx, input.DormID)
	if err != nil {
		return "", err
	}

	for _, sem := range semesters {
		if sem.Contains(date) {
			return sem.ID, nil
		}
	}

	start := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), time.June, 30, 0, 0, 0, 0, time.UTC)
	if date.Month() > time.June {
		start = time.Date(date.Year(), time.July, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	sem := &domain.Semester{
		ID:        uc.idGen.Generate(),
		DormID:    input.DormID,
		Label:     fmt.Sprintf("Imported %d-%s", date.Year(), start.Format("Jan")),
		StartsOn:  start,
		EndsOn:    end,
		CreatedAt: now,
	}
	if err := uc.semesterRepo.Create(ctx, sem); err != nil {
		return "", err
	}

	uc.logger.Info().
		Str("dorm_id", input.DormID).
		Str("semester_id", sem.ID).
		Str("label", sem.Label).
		Msg("bootstrapped semester for import")

	return sem.ID, nil
}
