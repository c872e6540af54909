package dto

import (
	"time"

	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/payment"
)

type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

type MenuListResponse struct {
	Items      []model.MenuItem `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

type CartResponse struct {
	Lines    []model.CartLine `json:"lines"`
	Subtotal float64          `json:"subtotal"`
}

type PaymentMethodsResponse struct {
	Methods []payment.Method `json:"methods"`
}

type CheckoutResponse struct {
	Order   model.Order     `json:"order"`
	Receipt payment.Receipt `json:"receipt"`
}

type OrderListResponse struct {
	Orders     []model.Order `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
