package mapping

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/models"
)

// ToModelTransfer converts a domain IncomingTransfer to a model IncomingTransfer.
func ToModelTransfer(d domain.IncomingTransfer) models.IncomingTransfer {
	return models.IncomingTransfer{
		TransferID:     d.TransferID,
		TenantID:       d.TenantID,
		Amount:         d.Amount,
		Reference:      d.Reference,
		OriginLabel:    d.OriginLabel,
		RawDescription: d.RawDescription,
		ReceivedAt:     d.ReceivedAt,
		Source:         string(d.Source),
		Consumed:       d.Consumed,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a model IncomingTransfer to a domain IncomingTransfer.
func ToDomainTransfer(m models.IncomingTransfer) domain.IncomingTransfer {
	return domain.IncomingTransfer{
		TransferID:     m.TransferID,
		TenantID:       m.TenantID,
		Amount:         m.Amount,
		Reference:      m.Reference,
		OriginLabel:    m.OriginLabel,
		RawDescription: m.RawDescription,
		ReceivedAt:     m.ReceivedAt,
		Source:         domain.TransferSource(m.Source),
		Consumed:       m.Consumed,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransferSlice converts a slice of model transfers to domain transfers.
func ToDomainTransferSlice(ms []models.IncomingTransfer) []domain.IncomingTransfer {
	ds := make([]domain.IncomingTransfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
