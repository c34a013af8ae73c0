package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseStatus string

const (
	PurchaseStatusCompleted PurchaseStatus = "completed"
)

// Purchase binds one user to one book; at most one row per (user, book)
type Purchase struct {
	ID           int             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int             `gorm:"not null;uniqueIndex:uq_purchases_user_book" json:"user_id"`
	BookID       int             `gorm:"not null;uniqueIndex:uq_purchases_user_book" json:"book_id"`
	PurchaseDate time.Time       `gorm:"not null" json:"purchase_date"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Status       PurchaseStatus  `gorm:"type:varchar(20);not null" json:"status"`

	// Relationships
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseSettings is the singleton row read before every purchase
type PurchaseSettings struct {
	ID                    int             `gorm:"primaryKey;autoIncrement" json:"id"`
	AllowStudentPurchases bool            `gorm:"not null" json:"allow_student_purchases"`
	DefaultBookPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"default_book_price"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PurchaseSettings) TableName() string {
	return "purchase_settings"
}
