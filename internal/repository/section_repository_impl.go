package repository

import (
	"context"
	"errors"

	"librarylens/internal/domain/entity"
	domainRepo "librarylens/internal/domain/repository"

	"gorm.io/gorm"
)

type sectionRepository struct{}

func NewSectionRepository() domainRepo.SectionRepository {
	return &sectionRepository{}
}

func (r *sectionRepository) Create(ctx context.Context, db *gorm.DB, section *entity.Section) error {
	return db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Section, error) {
	var section entity.Section
	err := db.WithContext(ctx).Where("id = ?", id).First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Section, error) {
	var section entity.Section
	err := db.WithContext(ctx).Where("name = ?", name).First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Section, error) {
	var sections []entity.Section
	if err := db.WithContext(ctx).Order("name ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepository) Update(ctx context.Context, db *gorm.DB, section *entity.Section) error {
	return db.WithContext(ctx).Save(section).Error
}

func (r *sectionRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Section{})
	return result.RowsAffected, result.Error
}

// CountBooks returns how many books the section owns.
func (r *sectionRepository) CountBooks(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Book{}).Where("section_id = ?", id).Count(&count).Error
	return count, err
}
