package domain

// SellerRole controls what back-office actions a seller may perform.
type SellerRole string

const (
	RoleAdmin   SellerRole = "ADMIN"
	RoleManager SellerRole = "MANAGER"
	RoleCashier SellerRole = "CASHIER"
)

// Seller is a back-office user. Sellers own cash sessions and record sales.
type Seller struct {
	SellerID     string     `json:"sellerID"`
	TenantID     string     `json:"tenantID"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         SellerRole `json:"role"`
	IsActive     bool       `json:"isActive"`
	AuditFields
}
