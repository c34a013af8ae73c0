package repository

import (
	"context"

	"librarylens/internal/domain/entity"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, db *gorm.DB, book *entity.Book) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Book, error)
	Search(ctx context.Context, db *gorm.DB, filter entity.BookFilter, limit, offset int) ([]entity.Book, error)
	Count(ctx context.Context, db *gorm.DB, filter entity.BookFilter) (int64, error)
	Update(ctx context.Context, db *gorm.DB, book *entity.Book) error
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
	MarkUnavailable(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
