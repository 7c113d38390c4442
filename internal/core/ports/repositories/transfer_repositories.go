package repositories

import (
	"context"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// TransferReader defines read operations for incoming transfer data.
type TransferReader interface {
	// FindTransferByID retrieves a transfer scoped to a tenant.
	FindTransferByID(ctx context.Context, tenantID, transferID string) (*domain.IncomingTransfer, error)

	// ListTransfers retrieves a token-paginated list of transfers for a
	// tenant, newest first. When unconsumedOnly is set, consumed transfers
	// are filtered out.
	ListTransfers(ctx context.Context, tenantID string, limit int, nextToken *string, unconsumedOnly bool) ([]domain.IncomingTransfer, *string, error)
}

// TransferWriter defines write operations for incoming transfer data.
type TransferWriter interface {
	// SaveTransfer inserts a new transfer row.
	SaveTransfer(ctx context.Context, transfer domain.IncomingTransfer) error
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
