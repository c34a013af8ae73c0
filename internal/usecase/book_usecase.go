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

const (
	DefaultPerPage    = 12
	MaxPerPage        = 100
	LiveSearchResults = 10
)

type BookUsecase interface {
	CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*dto.BookResponse, error)
	GetBook(ctx context.Context, id int) (*dto.BookResponse, error)
	UpdateBook(ctx context.Context, id int, req *dto.UpdateBookRequest) (*dto.BookResponse, error)
	DeleteBook(ctx context.Context, id int) error
	SearchBooks(ctx context.Context, req dto.SearchBooksRequest) (*dto.BookPageResponse, error)
	LiveSearch(ctx context.Context, query string, sectionID int) ([]dto.BookResponse, error)
}

type bookUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookRepo     repository.BookRepository
	sectionRepo  repository.SectionRepository
	purchaseRepo repository.PurchaseRepository
	auditService service.AuditService
}

func NewBookUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookRepo repository.BookRepository,
	sectionRepo repository.SectionRepository,
	purchaseRepo repository.PurchaseRepository,
	auditService service.AuditService,
) BookUsecase {
	return &bookUsecase{
		db:           db,
		log:          log,
		bookRepo:     bookRepo,
		sectionRepo:  sectionRepo,
		purchaseRepo: purchaseRepo,
		auditService: auditService,
	}
}

func (u *bookUsecase) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*dto.BookResponse, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	book := &entity.Book{
		Title:     strings.TrimSpace(req.Title),
		Author:    strings.TrimSpace(req.Author),
		ISBN:      normalizeISBN(req.ISBN),
		Genre:     strings.TrimSpace(req.Genre),
		SectionID: req.SectionID,
		Available: available,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookRepo.Create(ctx, tx, book); err != nil {
		if domainErr := u.mapWriteError(err); domainErr != nil {
			return nil, domainErr
		}
		u.log.Warnf("Failed to create book: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionBookCreate, "book", book.ID, book); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.toResponse(ctx, book, u.sectionLoader())
}

func (u *bookUsecase) GetBook(ctx context.Context, id int) (*dto.BookResponse, error) {
	book, err := u.findBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.toResponse(ctx, book, u.sectionLoader())
}

func (u *bookUsecase) UpdateBook(ctx context.Context, id int, req *dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := u.findBook(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValue := *book
	book.Title = strings.TrimSpace(req.Title)
	book.Author = strings.TrimSpace(req.Author)
	book.ISBN = normalizeISBN(req.ISBN)
	book.Genre = strings.TrimSpace(req.Genre)
	book.SectionID = req.SectionID
	book.Available = req.Available

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookRepo.Update(ctx, tx, book); err != nil {
		if domainErr := u.mapWriteError(err); domainErr != nil {
			return nil, domainErr
		}
		u.log.Warnf("Failed to update book: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionBookUpdate, "book", book.ID, oldValue, book); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.toResponse(ctx, book, u.sectionLoader())
}

func (u *bookUsecase) DeleteBook(ctx context.Context, id int) error {
	book, err := u.findBook(ctx, id)
	if err != nil {
		return err
	}

	purchases, err := u.purchaseRepo.CountByBookID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to count purchases of book %d: %+v", id, err)
		return err
	}
	if purchases > 0 {
		return ErrBookHasPurchases
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.bookRepo.Delete(ctx, tx, id)
	if err != nil {
		if repo.IsForeignKeyError(err, "purchases") {
			return ErrBookHasPurchases
		}
		u.log.Warnf("Failed to delete book: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionBookDelete, "book", id, book); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// SearchBooks runs the filtered catalog query. The total is counted over the
// whole filter, independently of the page being fetched.
func (u *bookUsecase) SearchBooks(ctx context.Context, req dto.SearchBooksRequest) (*dto.BookPageResponse, error) {
	filter := entity.BookFilter{
		Query:     strings.TrimSpace(req.Query),
		SectionID: req.SectionID,
	}
	page := entity.NewPagination(req.Page, req.PerPage, MaxPerPage)

	total, err := u.bookRepo.Count(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to count books: %+v", err)
		return nil, err
	}
	page = page.WithTotal(total)

	books, err := u.bookRepo.Search(ctx, u.db, filter, page.PerPage, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to search books: %+v", err)
		return nil, err
	}

	responses, err := u.toResponses(ctx, books)
	if err != nil {
		return nil, err
	}

	return converter.BookPageToResponse(responses, page), nil
}

// LiveSearch returns the first few matches for type-ahead lookups. Without
// any filter it returns nothing.
func (u *bookUsecase) LiveSearch(ctx context.Context, query string, sectionID int) ([]dto.BookResponse, error) {
	filter := entity.BookFilter{
		Query:     strings.TrimSpace(query),
		SectionID: sectionID,
	}
	if filter.IsEmpty() {
		return []dto.BookResponse{}, nil
	}

	books, err := u.bookRepo.Search(ctx, u.db, filter, LiveSearchResults, 0)
	if err != nil {
		u.log.Warnf("Failed to search books: %+v", err)
		return nil, err
	}

	return u.toResponses(ctx, books)
}

func (u *bookUsecase) findBook(ctx context.Context, id int) (*entity.Book, error) {
	book, err := u.bookRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find book: %+v", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// mapWriteError translates constraint violations on books into domain errors.
func (u *bookUsecase) mapWriteError(err error) error {
	switch {
	case repo.IsForeignKeyError(err, "section"):
		return ErrInvalidSection
	case repo.IsDuplicateKeyError(err, "isbn"):
		return ErrDuplicateISBN
	default:
		return nil
	}
}

// sectionLoader returns a loader that remembers sections for one request, so
// a page of books from the same section costs a single lookup.
func (u *bookUsecase) sectionLoader() entity.SectionLoader {
	seen := make(map[int]*entity.Section)
	return func(ctx context.Context, id int) (*entity.Section, error) {
		if section, ok := seen[id]; ok {
			return section, nil
		}
		section, err := u.sectionRepo.FindByID(ctx, u.db, id)
		if err != nil {
			return nil, err
		}
		seen[id] = section
		return section, nil
	}
}

func (u *bookUsecase) toResponse(ctx context.Context, book *entity.Book, load entity.SectionLoader) (*dto.BookResponse, error) {
	section, err := book.Section(ctx, load)
	if err != nil {
		u.log.Warnf("Failed to resolve section of book %d: %+v", book.ID, err)
		return nil, err
	}
	return converter.BookToResponse(book, section), nil
}

func (u *bookUsecase) toResponses(ctx context.Context, books []entity.Book) ([]dto.BookResponse, error) {
	load := u.sectionLoader()
	responses := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		response, err := u.toResponse(ctx, &books[i], load)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func normalizeISBN(isbn string) *string {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil
	}
	return &isbn
}
