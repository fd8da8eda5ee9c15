package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
)

// CarryForwardUseCase computes the dorm's running cash position across
// semesters. Each semester's closing cash becomes the next one's opening
// handover; the chain is never reset.
type CarryForwardUseCase struct {
	semesterRepo SemesterRepository
	entryRepo    EntryRepository
	expenseRepo  ExpenseRepository
}

// NewCarryForwardUseCase creates a new CarryForwardUseCase.
func NewCarryForwardUseCase(
	semesterRepo SemesterRepository,
	entryRepo EntryRepository,
	expenseRepo ExpenseRepository,
) *CarryForwardUseCase {
	return &CarryForwardUseCase{
		semesterRepo: semesterRepo,
		entryRepo:    entryRepo,
		expenseRepo:  expenseRepo,
	}
}

// SemesterSnapshot is one semester's cash position.
type SemesterSnapshot struct {
	Semester        *domain.Semester
	Inflow          decimal.Decimal
	ApprovedExpense decimal.Decimal
	Net             decimal.Decimal
	HandoverIn      decimal.Decimal
	ClosingCash     decimal.Decimal
}

// GetSemesterSnapshots walks the dorm's semesters in chronological order and
// chains each closing balance into the next opening balance. Every
// arithmetic step rounds to two decimals before the next one, so float-style
// accumulation drift cannot build up over a long history.
func (uc *CarryForwardUseCase) GetSemesterSnapshots(ctx context.Context, dormID string) ([]*SemesterSnapshot, error) {
	semesters, err := uc.semesterRepo.ListByDorm(ctx, dormID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*SemesterSnapshot, 0, len(semesters))
	handover := decimal.Zero

	for _, sem := range semesters {
		inflow, err := uc.semesterInflow(ctx, dormID, sem)
		if err != nil {
			return nil, err
		}

		spent, err := uc.approvedExpense(ctx, dormID, sem.ID)
		if err != nil {
			return nil, err
		}

		net := domain.Round2(inflow.Sub(spent))
		closing := domain.Round2(handover.Add(net))

		snapshots = append(snapshots, &SemesterSnapshot{
			Semester:        sem,
			Inflow:          inflow,
			ApprovedExpense: spent,
			Net:             net,
			HandoverIn:      handover,
			ClosingCash:     closing,
		})

		handover = closing
	}

	return snapshots, nil
}

// semesterInflow sums payment-type contribution entries belonging to the
// semester. Term-scoped entries count by their semester id; unscoped ones
// count when posted inside the semester's period. Legacy re-imported entries
// are excluded because their cash already sits in an earlier closing balance.
func (uc *CarryForwardUseCase) semesterInflow(ctx context.Context, dormID string, sem *domain.Semester) (decimal.Decimal, error) {
	entries, err := uc.entryRepo.Query(ctx, EntryFilter{
		DormID:  dormID,
		Ledgers: []domain.Ledger{domain.LedgerContributions},
		Types:   []domain.EntryType{domain.EntryTypePayment},
	})
	if err != nil {
		return decimal.Zero, err
	}

	inflow := decimal.Zero
	for _, e := range entries {
		if e.LegacyImport() || !sem.ScopesEntry(e) {
			continue
		}
		inflow = domain.Round2(inflow.Add(e.Amount))
	}

	return inflow, nil
}

func (uc *CarryForwardUseCase) approvedExpense(ctx context.Context, dormID, semesterID string) (decimal.Decimal, error) {
	expenses, err := uc.expenseRepo.ListBySemester(ctx, dormID, semesterID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, exp := range expenses {
		if !exp.Approved() {
			continue
		}
		total = domain.Round2(total.Add(exp.Amount))
	}

	return total, nil
}
