package repository

import (
	"context"

	"librarylens/internal/domain/entity"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, db *gorm.DB, purchase *entity.Purchase) error
	FindByUserAndBook(ctx context.Context, db *gorm.DB, userID, bookID int) (*entity.Purchase, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID int) ([]entity.Purchase, error)
	CountByBookID(ctx context.Context, db *gorm.DB, bookID int) (int64, error)
}

type PurchaseSettingsRepository interface {
	Get(ctx context.Context, db *gorm.DB) (*entity.PurchaseSettings, error)
	Create(ctx context.Context, db *gorm.DB, settings *entity.PurchaseSettings) error
	Update(ctx context.Context, db *gorm.DB, settings *entity.PurchaseSettings) error
}
