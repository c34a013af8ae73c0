package usecase

import (
	"context"
	"time"

	"librarylens/internal/converter"
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
	"librarylens/internal/domain/repository"
	repo "librarylens/internal/repository"
	"librarylens/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PurchaseUsecase interface {
	Purchase(ctx context.Context, userID, bookID int) (*dto.PurchaseResponse, error)
	GetMyPurchases(ctx context.Context, userID int) (*dto.PurchaseListResponse, error)
	GetSettings(ctx context.Context) (*dto.PurchaseSettingsResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdatePurchaseSettingsRequest) (*dto.PurchaseSettingsResponse, error)
}

type purchaseUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	bookRepo     repository.BookRepository
	purchaseRepo repository.PurchaseRepository
	settingsRepo repository.PurchaseSettingsRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewPurchaseUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	purchaseRepo repository.PurchaseRepository,
	settingsRepo repository.PurchaseSettingsRepository,
	auditService service.AuditService,
) PurchaseUsecase {
	return &purchaseUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		bookRepo:     bookRepo,
		purchaseRepo: purchaseRepo,
		settingsRepo: settingsRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

// Purchase records that userID bought bookID and marks the book unavailable.
//
// Flow:
// 1. Purchasing must be enabled in the settings row
// 2. The user must be a student
// 3. The book must exist and be available
// 4. Insert the purchase and flip availability in one transaction
//
// The (user_id, book_id) unique constraint decides concurrent attempts by the
// same user; the conditional availability update decides attempts by
// different users. The losing transaction is rolled back entirely.
func (u *purchaseUsecase) Purchase(ctx context.Context, userID, bookID int) (*dto.PurchaseResponse, error) {
	// Step 1: settings
	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load purchase settings: %+v", err)
		return nil, err
	}
	if settings == nil || !settings.AllowStudentPurchases {
		return nil, ErrPurchasingDisabled
	}

	// Step 2: role
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Classify().Can(entity.CapPurchaseBooks) {
		return nil, ErrNotAStudent
	}

	// Step 3: availability
	book, err := u.bookRepo.FindByID(ctx, u.db, bookID)
	if err != nil {
		u.log.Warnf("Failed to find book %d: %+v", bookID, err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if !book.Available {
		return nil, u.unavailableReason(ctx, userID, bookID)
	}

	// Step 4: unit of work
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	purchase := &entity.Purchase{
		UserID:       userID,
		BookID:       bookID,
		PurchaseDate: u.now().UTC(),
		Price:        settings.DefaultBookPrice,
		Status:       entity.PurchaseStatusCompleted,
	}

	if err := u.purchaseRepo.Create(ctx, tx, purchase); err != nil {
		if repo.IsDuplicateKeyError(err, "purchases") {
			return nil, ErrAlreadyPurchased
		}
		u.log.Warnf("Failed to create purchase: %+v", err)
		return nil, err
	}

	affected, err := u.bookRepo.MarkUnavailable(ctx, tx, bookID)
	if err != nil {
		u.log.Warnf("Failed to mark book %d unavailable: %+v", bookID, err)
		return nil, err
	}
	if affected == 0 {
		// Another user's purchase committed after step 3
		return nil, ErrBookUnavailable
	}

	newValue := map[string]interface{}{
		"book_id": bookID,
		"title":   book.Title,
		"price":   purchase.Price.StringFixed(2),
	}
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionPurchaseCreate, "purchase", purchase.ID, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if repo.IsDuplicateKeyError(err, "purchases") {
			return nil, ErrAlreadyPurchased
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"purchase_id": purchase.ID,
		"user_id":     userID,
		"book_id":     bookID,
		"price":       purchase.Price.StringFixed(2),
	}).Info("Purchase completed")

	purchase.Book = book
	return converter.PurchaseToResponse(purchase), nil
}

// unavailableReason tells a repeat purchase by the owner apart from a book
// somebody else holds.
func (u *purchaseUsecase) unavailableReason(ctx context.Context, userID, bookID int) error {
	existing, err := u.purchaseRepo.FindByUserAndBook(ctx, u.db, userID, bookID)
	if err != nil {
		u.log.Warnf("Failed to check existing purchase: %+v", err)
		return err
	}
	if existing != nil {
		return ErrAlreadyPurchased
	}
	return ErrBookUnavailable
}

func (u *purchaseUsecase) GetMyPurchases(ctx context.Context, userID int) (*dto.PurchaseListResponse, error) {
	purchases, err := u.purchaseRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find purchases for user %d: %+v", userID, err)
		return nil, err
	}

	return &dto.PurchaseListResponse{
		Purchases: converter.PurchasesToResponses(purchases),
		Total:     len(purchases),
	}, nil
}

func (u *purchaseUsecase) GetSettings(ctx context.Context) (*dto.PurchaseSettingsResponse, error) {
	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load purchase settings: %+v", err)
		return nil, err
	}
	if settings == nil {
		return nil, ErrPurchaseSettingsNotFound
	}

	return converter.PurchaseSettingsToResponse(settings), nil
}

// UpdateSettings overwrites the singleton row, creating it when missing.
func (u *purchaseUsecase) UpdateSettings(ctx context.Context, req *dto.UpdatePurchaseSettingsRequest) (*dto.PurchaseSettingsResponse, error) {
	if req.DefaultBookPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	settings, err := u.settingsRepo.Get(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to load purchase settings: %+v", err)
		return nil, err
	}

	var oldValue interface{}
	if settings == nil {
		settings = &entity.PurchaseSettings{}
	} else {
		oldValue = *settings
	}

	settings.AllowStudentPurchases = *req.AllowStudentPurchases
	settings.DefaultBookPrice = req.DefaultBookPrice.Round(2)

	if settings.ID == 0 {
		err = u.settingsRepo.Create(ctx, tx, settings)
	} else {
		err = u.settingsRepo.Update(ctx, tx, settings)
	}
	if err != nil {
		u.log.Warnf("Failed to save purchase settings: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionSettingsUpdate, "purchase_settings", settings.ID, oldValue, settings); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PurchaseSettingsToResponse(settings), nil
}
