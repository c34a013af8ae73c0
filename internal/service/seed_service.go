package service

import (
	"context"
	"errors"

	"librarylens/config"
	"librarylens/internal/domain/entity"
	"librarylens/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService creates the rows the catalog cannot run without. Every step
// only inserts what is missing, so it is safe to run on each start.
type SeedService struct {
	db           *gorm.DB
	log          *logrus.Logger
	roleRepo     repository.RoleRepository
	userRepo     repository.UserRepository
	settingsRepo repository.PurchaseSettingsRepository
	bcryptCost   int
}

func NewSeedService(
	db *gorm.DB,
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.PurchaseSettingsRepository,
	bcryptCost int,
) *SeedService {
	return &SeedService{
		db:           db,
		log:          log,
		roleRepo:     roleRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		bcryptCost:   bcryptCost,
	}
}

// Run seeds roles, purchase settings and the default administrator.
func (s *SeedService) Run(ctx context.Context, purchase config.PurchaseConfig, admin config.AdminConfig) error {
	if err := s.EnsureRoles(ctx); err != nil {
		return err
	}
	if err := s.EnsurePurchaseSettings(ctx, purchase); err != nil {
		return err
	}
	return s.EnsureAdmin(ctx, admin)
}

func (s *SeedService) EnsureRoles(ctx context.Context) error {
	for _, role := range entity.DefaultRoles {
		existing, err := s.roleRepo.FindByName(ctx, s.db, role.Name)
		if err != nil {
			s.log.Warnf("Failed to find role %s: %+v", role.Name, err)
			return err
		}
		if existing != nil {
			continue
		}

		role := role
		if err := s.roleRepo.Create(ctx, s.db, &role); err != nil {
			s.log.Warnf("Failed to create role %s: %+v", role.Name, err)
			return err
		}
		s.log.Infof("Seeded role %s", role.Name)
	}
	return nil
}

func (s *SeedService) EnsurePurchaseSettings(ctx context.Context, cfg config.PurchaseConfig) error {
	existing, err := s.settingsRepo.Get(ctx, s.db)
	if err != nil {
		s.log.Warnf("Failed to load purchase settings: %+v", err)
		return err
	}
	if existing != nil {
		return nil
	}

	settings := &entity.PurchaseSettings{
		AllowStudentPurchases: cfg.AllowStudentPurchases,
		DefaultBookPrice:      cfg.DefaultBookPrice,
	}
	if err := s.settingsRepo.Create(ctx, s.db, settings); err != nil {
		s.log.Warnf("Failed to create purchase settings: %+v", err)
		return err
	}

	s.log.WithFields(logrus.Fields{
		"allow_student_purchases": settings.AllowStudentPurchases,
		"default_book_price":      settings.DefaultBookPrice.StringFixed(2),
	}).Info("Seeded purchase settings")
	return nil
}

// EnsureAdmin creates the configured administrator when no Admin user exists.
func (s *SeedService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	exists, err := s.userRepo.ExistsWithRole(ctx, s.db, entity.RoleAdmin)
	if err != nil {
		s.log.Warnf("Failed to check for admin user: %+v", err)
		return err
	}
	if exists {
		return nil
	}

	role, err := s.roleRepo.FindByName(ctx, s.db, entity.RoleAdmin)
	if err != nil {
		s.log.Warnf("Failed to find admin role: %+v", err)
		return err
	}
	if role == nil {
		return errors.New("admin role has not been seeded")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), s.bcryptCost)
	if err != nil {
		s.log.Warnf("Failed to hash admin password: %+v", err)
		return err
	}

	user := &entity.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		s.log.Warnf("Failed to create admin user: %+v", err)
		return err
	}

	s.log.Infof("Seeded admin user %s", user.Username)
	return nil
}
