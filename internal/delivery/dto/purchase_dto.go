package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdatePurchaseSettingsRequest struct {
	AllowStudentPurchases *bool            `json:"allow_student_purchases" validate:"required"`
	DefaultBookPrice      *decimal.Decimal `json:"default_book_price" validate:"required"`
}

// Response DTOs

type PurchaseResponse struct {
	ID           int             `json:"id"`
	BookID       int             `json:"book_id"`
	BookTitle    string          `json:"book_title"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	PurchaseDate time.Time       `json:"purchase_date"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Total     int                `json:"total"`
}

type PurchaseSettingsResponse struct {
	AllowStudentPurchases bool            `json:"allow_student_purchases"`
	DefaultBookPrice      decimal.Decimal `json:"default_book_price"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
