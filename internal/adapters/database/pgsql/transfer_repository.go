package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	"github.com/tillpoint/tillpoint_backend/internal/models"
	"github.com/tillpoint/tillpoint_backend/internal/utils/mapping"
	"github.com/tillpoint/tillpoint_backend/internal/utils/pagination"
)

const transferColumns = `transfer_id, tenant_id, amount, reference, origin_label,
	raw_description, received_at, source, consumed, created_at, created_by,
	last_updated_at, last_updated_by`

type PgxTransferRepository struct {
	db *pgxpool.Pool
}

func newPgxTransferRepository(db *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{db: db}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

func scanTransfer(row pgx.Row) (models.IncomingTransfer, error) {
	var m models.IncomingTransfer
	err := row.Scan(
		&m.TransferID,
		&m.TenantID,
		&m.Amount,
		&m.Reference,
		&m.OriginLabel,
		&m.RawDescription,
		&m.ReceivedAt,
		&m.Source,
		&m.Consumed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.IncomingTransfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `
		INSERT INTO incoming_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransferID,
		m.TenantID,
		m.Amount,
		m.Reference,
		m.OriginLabel,
		m.RawDescription,
		m.ReceivedAt,
		m.Source,
		m.Consumed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save incoming transfer: %w", err)
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, tenantID, transferID string) (*domain.IncomingTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM incoming_transfers
		WHERE tenant_id = $1 AND transfer_id = $2;
	`
	m, err := scanTransfer(r.db.QueryRow(ctx, query, tenantID, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer by ID %s: %w", transferID, err)
	}
	d := mapping.ToDomainTransfer(m)
	return &d, nil
}

func (r *PgxTransferRepository) ListTransfers(ctx context.Context, tenantID string, limit int, nextToken *string, unconsumedOnly bool) ([]domain.IncomingTransfer, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + transferColumns + ` FROM incoming_transfers WHERE tenant_id = $1`)
	args := []interface{}{tenantID}

	if unconsumedOnly {
		sb.WriteString(` AND consumed = FALSE`)
	}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		sb.WriteString(` AND (received_at, transfer_id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`)
		args = append(args, createdAt, id)
	}

	sb.WriteString(` ORDER BY received_at DESC, transfer_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var ms []models.IncomingTransfer
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.ReceivedAt, last.TransferID)
		next = &token
	}
	return mapping.ToDomainTransferSlice(ms), next, nil
}
