package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
)

// BalanceUseCase aggregates entries into balances. Balances are derived on
// every read and never persisted, so they cannot drift from the entries.
type BalanceUseCase struct {
	entryRepo EntryRepository
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(entryRepo EntryRepository) *BalanceUseCase {
	return &BalanceUseCase{entryRepo: entryRepo}
}

// BalanceQuery narrows a balance computation. OccupantID empty means
// dorm-wide totals.
type BalanceQuery struct {
	DormID     string
	OccupantID string
	// SemesterID filters on the entry's exact semester tag.
	SemesterID string
	// Semester takes precedence over SemesterID and widens the match:
	// entries without a semester tag count when posted inside the term's
	// period, the same rule carry-forward applies.
	Semester *domain.Semester
	Ledgers  []domain.Ledger
	From     *time.Time
	To       *time.Time
}

// BalanceSummary is the aggregate over the filtered non-voided entry set.
// Outstanding clamps at zero for display; Net keeps the sign because
// carry-forward and clearance both need overpayments to stay visible.
type BalanceSummary struct {
	Charged     decimal.Decimal
	Collected   decimal.Decimal
	Outstanding decimal.Decimal
	Net         decimal.Decimal
}

// GetBalance computes the balance for one occupant (or the dorm) over the
// requested ledgers. Summation is plain addition over the filtered set, so
// the result is independent of entry order; duplicates sum rather than
// deduplicate, which is what keeps concurrent appends safe.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, q BalanceQuery) (*BalanceSummary, error) {
	entries, err := uc.queryEntries(ctx, q, q.OccupantID)
	if err != nil {
		return nil, err
	}

	return Summarize(entries), nil
}

// NetByOccupant computes the signed net per occupant over the requested
// ledgers. Dorm-level entries without an occupant are excluded; they belong
// to the dorm's cash position, not to anyone's clearance.
func (uc *BalanceUseCase) NetByOccupant(ctx context.Context, q BalanceQuery) (map[string]decimal.Decimal, error) {
	entries, err := uc.queryEntries(ctx, q, "")
	if err != nil {
		return nil, err
	}

	nets := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.OccupantID == "" {
			continue
		}
		nets[e.OccupantID] = nets[e.OccupantID].Add(e.SignedAmount())
	}

	return nets, nil
}

// queryEntries fetches the query's entry set. When a full semester is given
// the exact-tag SQL filter is dropped and scoping happens here, so unscoped
// entries posted inside the term are kept.
func (uc *BalanceUseCase) queryEntries(ctx context.Context, q BalanceQuery, occupantID string) ([]*domain.Entry, error) {
	filter := EntryFilter{
		DormID:     q.DormID,
		OccupantID: occupantID,
		SemesterID: q.SemesterID,
		Ledgers:    q.Ledgers,
		From:       q.From,
		To:         q.To,
	}
	if q.Semester != nil {
		filter.SemesterID = ""
	}

	entries, err := uc.entryRepo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if q.Semester == nil {
		return entries, nil
	}

	scoped := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Semester.ScopesEntry(e) {
			scoped = append(scoped, e)
		}
	}
	return scoped, nil
}

// Summarize folds an entry set into a balance summary. Voided entries never
// reach this function on the repository path, but callers holding in-memory
// sets get the same exclusion here.
func Summarize(entries []*domain.Entry) *BalanceSummary {
	s := &BalanceSummary{
		Charged:   decimal.Zero,
		Collected: decimal.Zero,
	}

	for _, e := range entries {
		if e.Voided() {
			continue
		}
		switch e.Type {
		case domain.EntryTypeCharge, domain.EntryTypeAdjustment:
			s.Charged = s.Charged.Add(e.Amount)
		case domain.EntryTypePayment:
			s.Collected = s.Collected.Add(e.Amount)
		case domain.EntryTypeRefund:
			s.Collected = s.Collected.Sub(e.Amount)
		}
	}

	s.Net = s.Charged.Sub(s.Collected)
	s.Outstanding = s.Net
	if s.Outstanding.IsNegative() {
		s.Outstanding = decimal.Zero
	}

	return s
}
