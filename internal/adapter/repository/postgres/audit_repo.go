package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// AuditRepository implements audit log persistence on PostgreSQL.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts an audit log row outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args, err := auditInsertArgs(log)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, auditInsertQuery, args...)
	return err
}

// CreateTx inserts an audit log row inside the caller's transaction so the
// audit trail commits or rolls back with the action it describes.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	args, err := auditInsertArgs(log)
	if err != nil {
		return err
	}

	_, err = tx.(*Tx).PgxTx().Exec(ctx, auditInsertQuery, args...)
	return err
}

const auditInsertQuery = `
	INSERT INTO audit_logs (
		id, actor_id, action, resource_type, resource_id, dorm_id,
		request_id, before_state, after_state, status, error_message, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func auditInsertArgs(log *domain.AuditLog) ([]any, error) {
	var beforeState, afterState []byte
	var err error

	if log.BeforeState != nil {
		if beforeState, err = json.Marshal(log.BeforeState); err != nil {
			return nil, err
		}
	}
	if log.AfterState != nil {
		if afterState, err = json.Marshal(log.AfterState); err != nil {
			return nil, err
		}
	}

	return []any{
		log.ID,
		log.ActorID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.DormID,
		log.RequestID,
		beforeState,
		afterState,
		log.Status,
		log.ErrorMessage,
		timeToPgTimestamptz(log.CreatedAt),
	}, nil
}

// List retrieves audit logs matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, resource_type, resource_id, dorm_id,
		       request_id, before_state, after_state, status, error_message, created_at
		FROM audit_logs
		WHERE 1=1
	`
	args := []any{}

	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(` AND actor_id = $%d`, len(args))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(` AND action = $%d`, len(args))
	}
	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += fmt.Sprintf(` AND resource_type = $%d`, len(args))
	}
	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += fmt.Sprintf(` AND resource_id = $%d`, len(args))
	}
	if filter.DormID != "" {
		args = append(args, filter.DormID)
		query += fmt.Sprintf(` AND dorm_id = $%d`, len(args))
	}
	if filter.StartDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.StartDate))
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if filter.EndDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.EndDate))
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

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

	var logs []*domain.AuditLog
	for rows.Next() {
		log, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func scanAuditLog(row pgx.Rows) (*domain.AuditLog, error) {
	var (
		log         domain.AuditLog
		beforeState []byte
		afterState  []byte
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&log.ID,
		&log.ActorID,
		&log.Action,
		&log.ResourceType,
		&log.ResourceID,
		&log.DormID,
		&log.RequestID,
		&beforeState,
		&afterState,
		&log.Status,
		&log.ErrorMessage,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if beforeState != nil {
		_ = json.Unmarshal(beforeState, &log.BeforeState)
	}
	if afterState != nil {
		_ = json.Unmarshal(afterState, &log.AfterState)
	}

	log.CreatedAt = createdAt.Time

	return &log, nil
}
