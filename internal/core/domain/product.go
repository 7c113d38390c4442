package domain

import "github.com/shopspring/decimal"

// Product is a catalog item. Catalog rows are plain CRUD plumbing; they carry
// no reconciliation semantics.
type Product struct {
	ProductID  string          `json:"productID"`
	TenantID   string          `json:"tenantID"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"categoryID,omitempty"`
	SupplierID *string         `json:"supplierID,omitempty"`
	Price      decimal.Decimal `json:"price"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
