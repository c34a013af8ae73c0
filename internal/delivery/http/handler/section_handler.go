package handler

import (
	"encoding/json"
	"net/http"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/usecase"
	"librarylens/pkg/response"
	"librarylens/pkg/validator"
)

type SectionHandler struct {
	sectionUsecase usecase.SectionUsecase
	validator      *validator.CustomValidator
}

func NewSectionHandler(sectionUsecase usecase.SectionUsecase, validator *validator.CustomValidator) *SectionHandler {
	return &SectionHandler{
		sectionUsecase: sectionUsecase,
		validator:      validator,
	}
}

// CreateSection handles creating a new section
// @Summary Create section
// @Tags Sections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SectionRequest true "Section Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sections [post]
func (h *SectionHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req dto.SectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	section, err := h.sectionUsecase.CreateSection(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create section")
		return
	}

	response.Success(w, http.StatusCreated, "Section created successfully", section)
}

// GetSection handles getting a section by ID
// @Summary Get section
// @Tags Sections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sections/{id} [get]
func (h *SectionHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid section ID", nil)
		return
	}

	section, err := h.sectionUsecase.GetSection(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get section")
		return
	}

	response.Success(w, http.StatusOK, "Section retrieved successfully", section)
}

// GetAllSections handles listing every section
// @Summary List sections
// @Tags Sections
// @Produce json
// @Success 200 {object} response.Response
// @Router /sections [get]
func (h *SectionHandler) GetAllSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sectionUsecase.GetAllSections(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get sections")
		return
	}

	response.Success(w, http.StatusOK, "Sections retrieved successfully", sections)
}

// UpdateSection handles updating a section
// @Summary Update section
// @Tags Sections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param request body dto.SectionRequest true "Section Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sections/{id} [put]
func (h *SectionHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid section ID", nil)
		return
	}

	var req dto.SectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	section, err := h.sectionUsecase.UpdateSection(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update section")
		return
	}

	response.Success(w, http.StatusOK, "Section updated successfully", section)
}

// DeleteSection handles deleting an empty section
// @Summary Delete section
// @Tags Sections
// @Security BearerAuth
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /sections/{id} [delete]
func (h *SectionHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid section ID", nil)
		return
	}

	if err := h.sectionUsecase.DeleteSection(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete section")
		return
	}

	response.Success(w, http.StatusOK, "Section deleted successfully", nil)
}
