package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lenderly/loanledger/internal/domain"
	"github.com/lenderly/loanledger/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditInsertQuery = `
	INSERT INTO audit_logs (
		id, actor_id, action, resource_type, resource_id,
		before_state, after_state, status, error_message, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// Create inserts an audit log entry outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	return createAudit(ctx, r.pool, log)
}

// CreateTx inserts an audit log entry inside the caller's
// transaction, so the audit row commits or rolls back with the change
// it describes.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return createAudit(ctx, txQuerier(tx), log)
}

func createAudit(ctx context.Context, q querier, log *domain.AuditLog) error {
	beforeState, err := marshalAuditState(log.BeforeState)
	if err != nil {
		return err
	}

	afterState, err := marshalAuditState(log.AfterState)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, auditInsertQuery,
		log.ID,
		log.ActorID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		beforeState,
		afterState,
		log.Status,
		log.ErrorMessage,
		log.CreatedAt,
	)

	return err
}

// List retrieves audit logs, newest first, with optional filters.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, resource_type, resource_id,
		       before_state, after_state, status, error_message, created_at
		FROM audit_logs
		WHERE 1=1
	`
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.ActorID != "" {
		add(" AND actor_id = $%d", filter.ActorID)
	}

	if filter.Action != "" {
		add(" AND action = $%d", filter.Action)
	}

	if filter.ResourceType != "" {
		add(" AND resource_type = $%d", filter.ResourceType)
	}

	if filter.ResourceID != "" {
		add(" AND resource_id = $%d", filter.ResourceID)
	}

	if filter.StartDate != nil {
		add(" AND created_at >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add(" AND created_at <= $%d", *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		add(" LIMIT $%d", filter.Limit)
	}

	if filter.Offset > 0 {
		add(" OFFSET $%d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log         domain.AuditLog
			beforeState []byte
			afterState  []byte
		)

		err := rows.Scan(
			&log.ID,
			&log.ActorID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&beforeState,
			&afterState,
			&log.Status,
			&log.ErrorMessage,
			&log.CreatedAt,
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

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

func marshalAuditState(state domain.JSON) ([]byte, error) {
	if state == nil {
		return nil, nil
	}
	return json.Marshal(state)
}
