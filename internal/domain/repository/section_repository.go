package repository

import (
	"context"

	"librarylens/internal/domain/entity"

	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(ctx context.Context, db *gorm.DB, section *entity.Section) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Section, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Section, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Section, error)
	Update(ctx context.Context, db *gorm.DB, section *entity.Section) error
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
	CountBooks(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
