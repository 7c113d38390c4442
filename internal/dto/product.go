package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
)

// CreateProductRequest is the payload to create a catalog item.
type CreateProductRequest struct {
	SKU        string          `json:"sku" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	CategoryID *string         `json:"categoryID"`
	SupplierID *string         `json:"supplierID"`
	Price      decimal.Decimal `json:"price" binding:"required"`
}

// UpdateProductRequest defines the data allowed for updating a product.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ProductID  string          `json:"productID"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"categoryID,omitempty"`
	SupplierID *string         `json:"supplierID,omitempty"`
	Price      decimal.Decimal `json:"price"`
	IsActive   bool            `json:"isActive"`
}

// ToProductResponse converts a domain Product to its API representation.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:  p.ProductID,
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
		Price:      p.Price,
		IsActive:   p.IsActive,
	}
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToListProductsResponse converts a slice of domain Products.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(&p)
	}
	return ListProductsResponse{Products: out}
}
