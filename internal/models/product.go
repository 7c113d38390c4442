package models

import "github.com/shopspring/decimal"

// Product is the products table row.
type Product struct {
	ProductID  string          `json:"productID"`
	TenantID   string          `json:"tenantID"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"categoryID"`
	SupplierID *string         `json:"supplierID"`
	Price      decimal.Decimal `json:"price"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
