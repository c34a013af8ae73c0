package handler

import (
	"encoding/json"
	"net/http"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/delivery/http/middleware"
	"librarylens/internal/usecase"
	"librarylens/pkg/response"
	"librarylens/pkg/validator"
)

type PurchaseHandler struct {
	purchaseUsecase usecase.PurchaseUsecase
	validator       *validator.CustomValidator
}

func NewPurchaseHandler(purchaseUsecase usecase.PurchaseUsecase, validator *validator.CustomValidator) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUsecase: purchaseUsecase,
		validator:       validator,
	}
}

// Purchase handles buying a book
// @Summary Purchase book
// @Description Records a purchase and marks the book unavailable
// @Tags Purchases
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /books/{id}/purchase [post]
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid book ID", nil)
		return
	}

	purchase, err := h.purchaseUsecase.Purchase(r.Context(), userID, bookID)
	if err != nil {
		writeError(w, err, "Failed to purchase book")
		return
	}

	response.Success(w, http.StatusCreated, "Book purchased successfully", purchase)
}

// GetMyPurchases handles listing the caller's purchases
// @Summary My purchases
// @Tags Purchases
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /purchases/me [get]
func (h *PurchaseHandler) GetMyPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	purchases, err := h.purchaseUsecase.GetMyPurchases(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get purchases")
		return
	}

	response.Success(w, http.StatusOK, "Purchases retrieved successfully", purchases)
}

// GetSettings handles reading the purchase settings
// @Summary Get purchase settings
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/purchase-settings [get]
func (h *PurchaseHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.purchaseUsecase.GetSettings(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get purchase settings")
		return
	}

	response.Success(w, http.StatusOK, "Purchase settings retrieved successfully", settings)
}

// UpdateSettings handles changing the purchase settings
// @Summary Update purchase settings
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdatePurchaseSettingsRequest true "Purchase Settings Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/purchase-settings [put]
func (h *PurchaseHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePurchaseSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settings, err := h.purchaseUsecase.UpdateSettings(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to update purchase settings")
		return
	}

	response.Success(w, http.StatusOK, "Purchase settings updated successfully", settings)
}
