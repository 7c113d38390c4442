package dto

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// CreateSellerRequest is the payload to create a back-office user.
type CreateSellerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN MANAGER CASHIER"`
}

// UpdateSellerRequest defines the data allowed for updating a seller.
// Pointers differentiate omitted fields from zero values.
type UpdateSellerRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER CASHIER"`
}

// SellerResponse is the API representation of a seller.
type SellerResponse struct {
	SellerID string `json:"sellerID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// ToSellerResponse converts a domain Seller to its API representation.
func ToSellerResponse(s *domain.Seller) SellerResponse {
	return SellerResponse{
		SellerID: s.SellerID,
		Name:     s.Name,
		Email:    s.Email,
		Role:     string(s.Role),
		IsActive: s.IsActive,
	}
}

// ListSellersParams defines query parameters for listing sellers.
type ListSellersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListSellersResponse wraps the list of sellers.
type ListSellersResponse struct {
	Sellers []SellerResponse `json:"sellers"`
}

// ToListSellersResponse converts a slice of domain Sellers.
func ToListSellersResponse(sellers []domain.Seller) ListSellersResponse {
	out := make([]SellerResponse, len(sellers))
	for i, s := range sellers {
		out[i] = ToSellerResponse(&s)
	}
	return ListSellersResponse{Sellers: out}
}
