package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dormhub/dormledger/internal/domain"
)

const expenseColumns = `
	id, dorm_id, semester_id, title, amount, status, note, spent_at,
	recorded_by, created_at, approved_by, approved_at
`

// ExpenseRepository implements usecase.ExpenseRepository on PostgreSQL.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts an expense record.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (
			id, dorm_id, semester_id, title, amount, status, note, spent_at,
			recorded_by, created_at, approved_by, approved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var approvedAt pgtype.Timestamptz
	if expense.ApprovedAt != nil {
		approvedAt = timeToPgTimestamptz(*expense.ApprovedAt)
	}

	amount, err := decimalToNumeric(expense.Amount)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		expense.ID,
		expense.DormID,
		expense.SemesterID,
		expense.Title,
		amount,
		string(expense.Status),
		expense.Note,
		timeToPgTimestamptz(expense.SpentAt),
		expense.RecordedBy,
		timeToPgTimestamptz(expense.CreatedAt),
		expense.ApprovedBy,
		approvedAt,
	)

	return err
}

// GetByID retrieves an expense.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}

	return expense, nil
}

// SetStatus records the review outcome of a pending expense. Approval
// attribution is only written for approvals; a rejection leaves the
// approval columns empty.
func (r *ExpenseRepository) SetStatus(ctx context.Context, id string, status domain.ExpenseStatus, actor string, at time.Time) error {
	query := `
		UPDATE expenses
		SET status = $1,
		    approved_by = CASE WHEN $1 = 'approved' THEN $2 ELSE '' END,
		    approved_at = CASE WHEN $1 = 'approved' THEN $3 END
		WHERE id = $4 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, string(status), actor, timeToPgTimestamptz(at), id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrExpenseNotFound
		}
		return domain.ErrExpenseNotPending
	}

	return nil
}

// ListBySemester retrieves a semester's expenses, most recent spend first.
func (r *ExpenseRepository) ListBySemester(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE dorm_id = $1 AND semester_id = $2
		ORDER BY spent_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, dormID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// ImportMarkedNotes returns the notes of expenses carrying an import marker.
// The import reconciler parses the embedded keys out of them.
func (r *ExpenseRepository) ImportMarkedNotes(ctx context.Context, dormID string) ([]string, error) {
	query := `SELECT note FROM expenses WHERE dorm_id = $1 AND note LIKE '%[import:%'`

	rows, err := r.pool.Query(ctx, query, dormID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []string
	for rows.Next() {
		var note string
		if err := rows.Scan(&note); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense    domain.Expense
		status     string
		amount     pgtype.Numeric
		spentAt    pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
		approvedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&expense.DormID,
		&expense.SemesterID,
		&expense.Title,
		&amount,
		&status,
		&expense.Note,
		&spentAt,
		&expense.RecordedBy,
		&createdAt,
		&expense.ApprovedBy,
		&approvedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Status = domain.ExpenseStatus(status)
	expense.Amount = numericToDecimal(amount)
	expense.SpentAt = spentAt.Time
	expense.CreatedAt = createdAt.Time

	if approvedAt.Valid {
		t := approvedAt.Time
		expense.ApprovedAt = &t
	}

	return &expense, nil
}
