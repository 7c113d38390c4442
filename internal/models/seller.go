package models

// Seller is the sellers table row.
type Seller struct {
	SellerID     string `json:"sellerID"`
	TenantID     string `json:"tenantID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
