package dto

// LoginRequest is the payload for seller login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT and the authenticated seller.
type LoginResponse struct {
	Token  string         `json:"token"`
	Seller SellerResponse `json:"seller"`
}
