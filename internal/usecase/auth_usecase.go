package usecase

import (
	"context"
	"fmt"
	"strings"

	"librarylens/internal/converter"
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
	"librarylens/internal/domain/repository"
	repo "librarylens/internal/repository"
	"librarylens/internal/service"
	"librarylens/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest, role entity.RoleName) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	LogoutAll(ctx context.Context, userID int) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID int) (*dto.CurrentUserResponse, error)

	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id int) (*entity.User, error)
	VerifyPassword(user *entity.User, plaintext string) bool
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	settingsRepo repository.PurchaseSettingsRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
	jwtService   *jwt.JWTService
	bcryptCost   int
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	settingsRepo repository.PurchaseSettingsRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	jwtService *jwt.JWTService,
	bcryptCost int,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		settingsRepo: settingsRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
		jwtService:   jwtService,
		bcryptCost:   bcryptCost,
	}
}

// Register creates a Student account.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return u.createUser(ctx, req.Username, req.Email, req.Password, entity.RoleStudent, entity.AuditActionUserRegister)
}

// CreateAccount creates an account with any role. It is the privileged path
// used by administrators and the command line.
func (u *authUsecase) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest, role entity.RoleName) (*dto.UserResponse, error) {
	if _, ok := entity.ParseRoleName(string(role)); !ok {
		return nil, ErrInvalidRole
	}

	action := entity.AuditActionUserRegister
	if role == entity.RoleLibrarian {
		action = entity.AuditActionLibrarianCreate
	}
	return u.createUser(ctx, req.Username, req.Email, req.Password, role, action)
}

func (u *authUsecase) createUser(ctx context.Context, username, email, password string, roleName entity.RoleName, action string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// Check uniqueness up front so the caller gets a precise error
	existing, err := u.userRepo.FindByUsername(ctx, u.db, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	existing, err = u.userRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByName(ctx, tx, roleName)
	if err != nil {
		u.log.Warnf("Failed to find role %s: %+v", roleName, err)
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %s has not been seeded", roleName)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		RoleID:       role.ID,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if repo.IsDuplicateKeyError(err, "username") {
			return nil, ErrDuplicateUsername
		}
		if repo.IsDuplicateKeyError(err, "email") {
			return nil, ErrDuplicateEmail
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}
	user.Role = *role

	newValue := map[string]interface{}{"username": user.Username, "email": user.Email, "role": role.Name}
	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), action, "user", user.ID, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{"user_id": user.ID, "role": role.Name}).Info("User created")
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Find user by username (read-only, no transaction needed)
	user, err := u.userRepo.FindByUsername(ctx, u.db, strings.TrimSpace(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil || !u.VerifyPassword(user, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user.ID, user.Username, user.Classify().String())
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	if err := u.tokenStore.Revoke(ctx, jwt.AccessToken, accessTokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if refreshTokenID != "" {
		if err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, refreshTokenID); err != nil {
			u.log.Warnf("Failed to revoke refresh token: %+v", err)
			return err
		}
	}

	return nil
}

// LogoutAll revokes every access and refresh token issued to userID.
func (u *authUsecase) LogoutAll(ctx context.Context, userID int) error {
	if err := u.tokenStore.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens for user %d: %+v", userID, err)
		return err
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Refresh tokens are single use
	if err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	// Re-read the role so a changed role takes effect on refresh
	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, user.ID, user.Username, user.Classify().String())
}

func (u *authUsecase) issueTokens(ctx context.Context, userID int, username, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, username, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, username, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, jwt.AccessToken, userID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, jwt.RefreshToken, userID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID int) (*dto.CurrentUserResponse, error) {
	user, err := u.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := user.Classify()
	canPurchase := false
	if role.Can(entity.CapPurchaseBooks) {
		settings, err := u.settingsRepo.Get(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to load purchase settings: %+v", err)
			return nil, err
		}
		canPurchase = settings != nil && settings.AllowStudentPurchases
	}

	capabilities := make([]string, 0)
	for _, c := range role.Capabilities() {
		capabilities = append(capabilities, string(c))
	}

	return &dto.CurrentUserResponse{
		UserResponse: *converter.UserToResponse(user),
		CanPurchase:  canPurchase,
		Capabilities: capabilities,
	}, nil
}

func (u *authUsecase) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return u.findUser(u.userRepo.FindByUsername(ctx, u.db, username))
}

func (u *authUsecase) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return u.findUser(u.userRepo.FindByEmail(ctx, u.db, email))
}

func (u *authUsecase) FindByID(ctx context.Context, id int) (*entity.User, error) {
	return u.findUser(u.userRepo.FindByID(ctx, u.db, id))
}

func (u *authUsecase) findUser(user *entity.User, err error) (*entity.User, error) {
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// VerifyPassword compares plaintext against the stored bcrypt hash.
func (u *authUsecase) VerifyPassword(user *entity.User, plaintext string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}
