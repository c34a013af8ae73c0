package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/delivery/http/middleware"
	"librarylens/internal/usecase"
	"librarylens/pkg/jwt"
	"librarylens/pkg/response"
	"librarylens/pkg/validator"
)

// AuthHandler serves reader accounts and their sessions. Access tokens carry
// the user id, username and role name; refresh tokens are single use.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	jwtService  *jwt.JWTService
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		jwtService:  jwtService,
	}
}

// Register opens a Student account. Librarians are created by an admin.
// @Summary Register a student
// @Description Self-service signup; the role is always Student
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Username, email, password and confirmation"
// @Success 201 {object} response.Response{data=dto.UserResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response "username_taken or email_taken"
// @Failure 429 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register student")
		return
	}

	response.Success(w, http.StatusCreated, "Student registered", user)
}

// Login exchanges a username and password for a token pair.
// @Summary Log in by username
// @Description The access token's role claim decides which catalog routes are open
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Username and password"
// @Success 200 {object} response.Response{data=dto.TokenResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response "invalid_credentials"
// @Failure 429 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to log in")
		return
	}

	response.Success(w, http.StatusOK, "Logged in", tokens)
}

// Logout revokes the presented access token and, when the body names one,
// its refresh token.
// @Summary Log out this session
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token to revoke as well"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing session")
		return
	}

	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.authUsecase.Logout(r.Context(), tokenID, h.refreshTokenID(req.RefreshToken)); err != nil {
		writeError(w, err, "Failed to log out")
		return
	}

	response.Success(w, http.StatusOK, "Logged out", nil)
}

// refreshTokenID returns the id of a valid refresh token, or "" for anything
// else so an access token in the body is never revoked as a refresh token.
func (h *AuthHandler) refreshTokenID(raw string) string {
	if raw == "" {
		return ""
	}
	claims, err := h.jwtService.ValidateToken(raw)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return ""
	}
	return claims.TokenID
}

// LogoutAll revokes every token issued to the current reader.
// @Summary Log out everywhere
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing session")
		return
	}

	if err := h.authUsecase.LogoutAll(r.Context(), userID); err != nil {
		writeError(w, err, "Failed to log out")
		return
	}

	response.Success(w, http.StatusOK, "All sessions revoked", nil)
}

// RefreshToken rotates a refresh token. The role is re-read from the users
// table, so a promotion shows up in the new access token.
// @Summary Rotate tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Response{data=dto.TokenResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response "invalid_token or token_revoked"
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to rotate tokens")
		return
	}

	response.Success(w, http.StatusOK, "Tokens rotated", tokens)
}

// GetCurrentUser reports the reader, their capabilities and whether the
// purchase desk is open to them right now.
// @Summary Current reader
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=dto.CurrentUserResponse}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing session")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to load current user")
		return
	}

	response.Success(w, http.StatusOK, "Current user", user)
}
