package mapping

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:             d.SaleID,
		TenantID:           d.TenantID,
		SellerID:           d.SellerID,
		TotalAmount:        d.TotalAmount,
		PaidAmount:         d.PaidAmount,
		BalanceAmount:      d.BalanceAmount,
		Status:             models.SaleStatus(d.Status),
		PaymentCompletedAt: d.PaymentCompletedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:             m.SaleID,
		TenantID:           m.TenantID,
		SellerID:           m.SellerID,
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		BalanceAmount:      m.BalanceAmount,
		Status:             domain.SaleStatus(m.Status),
		PaymentCompletedAt: m.PaymentCompletedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleSlice converts a slice of model Sales to domain Sales.
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}
