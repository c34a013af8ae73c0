package repository

import (
	"context"
	"errors"
	"strings"

	"librarylens/internal/domain/entity"
	domainRepo "librarylens/internal/domain/repository"

	"gorm.io/gorm"
)

type bookRepository struct{}

func NewBookRepository() domainRepo.BookRepository {
	return &bookRepository{}
}

func (r *bookRepository) Create(ctx context.Context, db *gorm.DB, book *entity.Book) error {
	return db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Book, error) {
	var book entity.Book
	err := db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// Search returns one window of the books matching filter, ordered by title then id.
func (r *bookRepository) Search(ctx context.Context, db *gorm.DB, filter entity.BookFilter, limit, offset int) ([]entity.Book, error) {
	var books []entity.Book
	err := applyBookFilter(db.WithContext(ctx).Model(&entity.Book{}), filter).
		Order("books.title ASC, books.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Count returns the number of books matching filter regardless of paging.
func (r *bookRepository) Count(ctx context.Context, db *gorm.DB, filter entity.BookFilter) (int64, error) {
	var total int64
	err := applyBookFilter(db.WithContext(ctx).Model(&entity.Book{}), filter).Count(&total).Error
	return total, err
}

func (r *bookRepository) Update(ctx context.Context, db *gorm.DB, book *entity.Book) error {
	return db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Book{})
	return result.RowsAffected, result.Error
}

// MarkUnavailable flips available to false ONLY if it is still true.
// Returns affected rows: 1 = flipped, 0 = already unavailable.
func (r *bookRepository) MarkUnavailable(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)
	return result.RowsAffected, result.Error
}

func applyBookFilter(query *gorm.DB, filter entity.BookFilter) *gorm.DB {
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			`(LOWER(books.title) LIKE ? ESCAPE '\' OR LOWER(books.author) LIKE ? ESCAPE '\' OR LOWER(books.isbn) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if filter.SectionID > 0 {
		query = query.Where("books.section_id = ?", filter.SectionID)
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
