package mapping

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		TenantID:    d.TenantID,
		SKU:         d.SKU,
		Name:        d.Name,
		CategoryID:  d.CategoryID,
		SupplierID:  d.SupplierID,
		Price:       d.Price,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		TenantID:    m.TenantID,
		SKU:         m.SKU,
		Name:        m.Name,
		CategoryID:  m.CategoryID,
		SupplierID:  m.SupplierID,
		Price:       m.Price,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
