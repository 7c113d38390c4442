package mapping

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/models"
)

// ToModelSeller converts a domain Seller to a model Seller.
func ToModelSeller(d domain.Seller) models.Seller {
	return models.Seller{
		SellerID:     d.SellerID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSeller converts a model Seller to a domain Seller.
func ToDomainSeller(m models.Seller) domain.Seller {
	return domain.Seller{
		SellerID:     m.SellerID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.SellerRole(m.Role),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSellerSlice converts a slice of model Sellers to domain Sellers.
func ToDomainSellerSlice(ms []models.Seller) []domain.Seller {
	ds := make([]domain.Seller, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSeller(m)
	}
	return ds
}
