package usecase_test

import (
	"testing"
	"time"

	"librarylens/config"
	"librarylens/internal/domain/entity"
	"librarylens/internal/repository"
	"librarylens/internal/service"
	"librarylens/internal/testutil"
	"librarylens/internal/usecase"
	"librarylens/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	roles      map[entity.RoleName]entity.Role
	tokens     service.TokenStore
	jwtService *jwt.JWTService

	auth     usecase.AuthUsecase
	sections usecase.SectionUsecase
	books    usecase.BookUsecase
	purchase usecase.PurchaseUsecase
	audit    usecase.AuditLogUsecase
}

// newFixture wires every usecase against a fresh database holding the
// default roles.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()

	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	sectionRepo := repository.NewSectionRepository()
	bookRepo := repository.NewBookRepository()
	purchaseRepo := repository.NewPurchaseRepository()
	settingsRepo := repository.NewPurchaseSettingsRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditRepo)
	tokens := service.NewMemoryTokenStore()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})

	return &fixture{
		db:         db,
		roles:      testutil.SeedRoles(t, db),
		tokens:     tokens,
		jwtService: jwtService,
		auth:       usecase.NewAuthUsecase(db, log, userRepo, roleRepo, settingsRepo, auditService, tokens, jwtService, bcrypt.MinCost),
		sections:   usecase.NewSectionUsecase(db, log, sectionRepo, auditService),
		books:      usecase.NewBookUsecase(db, log, bookRepo, sectionRepo, purchaseRepo, auditService),
		purchase:   usecase.NewPurchaseUsecase(db, log, userRepo, bookRepo, purchaseRepo, settingsRepo, auditService),
		audit:      usecase.NewAuditLogUsecase(db, log, auditRepo),
	}
}

func (f *fixture) user(t *testing.T, username string, role entity.RoleName) *entity.User {
	t.Helper()
	return testutil.CreateUser(t, f.db, username, f.roles[role])
}

func (f *fixture) countPurchases(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&entity.Purchase{}).Count(&n).Error; err != nil {
		t.Fatalf("count purchases: %v", err)
	}
	return n
}
