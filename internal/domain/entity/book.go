package entity

import (
	"context"
	"time"
)

// Book is a catalog entry owned by exactly one section
type Book struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(256);not null;index" json:"title"`
	Author    string    `gorm:"type:varchar(128);not null" json:"author"`
	ISBN      *string   `gorm:"column:isbn;type:varchar(20);uniqueIndex" json:"isbn"`
	Genre     string    `gorm:"type:varchar(64)" json:"genre"`
	SectionID int       `gorm:"not null;index" json:"section_id"`
	Available bool      `gorm:"not null" json:"available"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	section *Section
}

func (Book) TableName() string {
	return "books"
}

// SectionLoader fetches a section by id.
type SectionLoader func(ctx context.Context, id int) (*Section, error)

// Section resolves the owning section on first call and keeps it on the
// book afterwards. A nil section with a nil error means the row is gone.
func (b *Book) Section(ctx context.Context, load SectionLoader) (*Section, error) {
	if b.section != nil {
		return b.section, nil
	}

	section, err := load(ctx, b.SectionID)
	if err != nil {
		return nil, err
	}
	b.section = section
	return section, nil
}

// BookFilter is a domain-level filter for searching books.
// Used by repository layer to avoid coupling with delivery DTOs.
type BookFilter struct {
	Query     string // substring of title, author or isbn (case-insensitive)
	SectionID int    // 0 means any section
}

func (f BookFilter) IsEmpty() bool {
	return f.Query == "" && f.SectionID <= 0
}
