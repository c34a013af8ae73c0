package handler

import (
	"encoding/json"
	"net/http"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
	"librarylens/internal/usecase"
	"librarylens/pkg/response"
	"librarylens/pkg/validator"
)

type AdminHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAdminHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// CreateLibrarian handles creating a librarian account
// @Summary Create librarian
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/librarians [post]
func (h *AdminHandler) CreateLibrarian(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.CreateAccount(r.Context(), &req, entity.RoleLibrarian)
	if err != nil {
		writeError(w, err, "Failed to create librarian")
		return
	}

	response.Success(w, http.StatusCreated, "Librarian created successfully", user)
}
