package usecase

import (
	"context"
	"strings"

	"librarylens/internal/converter"
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
	"librarylens/internal/domain/repository"
	repo "librarylens/internal/repository"
	"librarylens/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SectionUsecase interface {
	CreateSection(ctx context.Context, req *dto.SectionRequest) (*dto.SectionResponse, error)
	GetSection(ctx context.Context, id int) (*dto.SectionResponse, error)
	GetAllSections(ctx context.Context) ([]dto.SectionResponse, error)
	UpdateSection(ctx context.Context, id int, req *dto.SectionRequest) (*dto.SectionResponse, error)
	DeleteSection(ctx context.Context, id int) error
}

type sectionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	sectionRepo  repository.SectionRepository
	auditService service.AuditService
}

func NewSectionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sectionRepo repository.SectionRepository,
	auditService service.AuditService,
) SectionUsecase {
	return &sectionUsecase{
		db:           db,
		log:          log,
		sectionRepo:  sectionRepo,
		auditService: auditService,
	}
}

func (u *sectionUsecase) CreateSection(ctx context.Context, req *dto.SectionRequest) (*dto.SectionResponse, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := u.sectionRepo.FindByName(ctx, u.db, name)
	if err != nil {
		u.log.Warnf("Failed to find section by name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSectionName
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	section := &entity.Section{
		Name:        name,
		Description: req.Description,
	}

	if err := u.sectionRepo.Create(ctx, tx, section); err != nil {
		if repo.IsDuplicateKeyError(err, "sections") {
			return nil, ErrDuplicateSectionName
		}
		u.log.Warnf("Failed to create section: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionSectionCreate, "section", section.ID, section); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SectionToResponse(section), nil
}

func (u *sectionUsecase) GetSection(ctx context.Context, id int) (*dto.SectionResponse, error) {
	section, err := u.sectionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find section: %+v", err)
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	return converter.SectionToResponse(section), nil
}

func (u *sectionUsecase) GetAllSections(ctx context.Context) ([]dto.SectionResponse, error) {
	sections, err := u.sectionRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all sections: %+v", err)
		return nil, err
	}

	return converter.SectionsToResponses(sections), nil
}

// UpdateSection renames or re-describes a section. The name is only checked
// for collisions when it differs from the stored one.
func (u *sectionUsecase) UpdateSection(ctx context.Context, id int, req *dto.SectionRequest) (*dto.SectionResponse, error) {
	section, err := u.sectionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find section: %+v", err)
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	name := strings.TrimSpace(req.Name)
	originalName := section.Name
	if name != originalName {
		other, err := u.sectionRepo.FindByName(ctx, u.db, name)
		if err != nil {
			u.log.Warnf("Failed to find section by name: %+v", err)
			return nil, err
		}
		if other != nil && other.ID != section.ID {
			return nil, ErrDuplicateSectionName
		}
	}

	oldValue := *section
	section.Name = name
	section.Description = req.Description

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sectionRepo.Update(ctx, tx, section); err != nil {
		if repo.IsDuplicateKeyError(err, "sections") {
			return nil, ErrDuplicateSectionName
		}
		u.log.Warnf("Failed to update section: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionSectionUpdate, "section", section.ID, oldValue, section); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SectionToResponse(section), nil
}

// DeleteSection removes a section that owns no books.
func (u *sectionUsecase) DeleteSection(ctx context.Context, id int) error {
	section, err := u.sectionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find section: %+v", err)
		return err
	}
	if section == nil {
		return ErrSectionNotFound
	}

	count, err := u.sectionRepo.CountBooks(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to count books in section %d: %+v", id, err)
		return err
	}
	if count > 0 {
		return ErrSectionNotEmpty
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.sectionRepo.Delete(ctx, tx, id)
	if err != nil {
		// A book was added after the count
		if repo.IsForeignKeyError(err, "section") {
			return ErrSectionNotEmpty
		}
		u.log.Warnf("Failed to delete section: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrSectionNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionSectionDelete, "section", id, section); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
