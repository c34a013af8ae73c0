package repository

import (
	"context"
	"errors"

	"librarylens/internal/domain/entity"
	domainRepo "librarylens/internal/domain/repository"

	"gorm.io/gorm"
)

type purchaseRepository struct{}

func NewPurchaseRepository() domainRepo.PurchaseRepository {
	return &purchaseRepository{}
}

func (r *purchaseRepository) Create(ctx context.Context, db *gorm.DB, purchase *entity.Purchase) error {
	return db.WithContext(ctx).Omit("Book").Create(purchase).Error
}

func (r *purchaseRepository) FindByUserAndBook(ctx context.Context, db *gorm.DB, userID, bookID int) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID int) ([]entity.Purchase, error) {
	var purchases []entity.Purchase
	err := db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("purchase_date DESC, id DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) CountByBookID(ctx context.Context, db *gorm.DB, bookID int) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Purchase{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}

type purchaseSettingsRepository struct{}

func NewPurchaseSettingsRepository() domainRepo.PurchaseSettingsRepository {
	return &purchaseSettingsRepository{}
}

// Get returns the singleton settings row, or nil when it has not been seeded.
func (r *purchaseSettingsRepository) Get(ctx context.Context, db *gorm.DB) (*entity.PurchaseSettings, error) {
	var settings entity.PurchaseSettings
	err := db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *purchaseSettingsRepository) Create(ctx context.Context, db *gorm.DB, settings *entity.PurchaseSettings) error {
	return db.WithContext(ctx).Create(settings).Error
}

func (r *purchaseSettingsRepository) Update(ctx context.Context, db *gorm.DB, settings *entity.PurchaseSettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
