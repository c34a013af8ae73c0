package handler

import (
	"encoding/json"
	"net/http"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/usecase"
	"librarylens/pkg/response"
	"librarylens/pkg/validator"
)

type BookHandler struct {
	bookUsecase usecase.BookUsecase
	validator   *validator.CustomValidator
}

func NewBookHandler(bookUsecase usecase.BookUsecase, validator *validator.CustomValidator) *BookHandler {
	return &BookHandler{
		bookUsecase: bookUsecase,
		validator:   validator,
	}
}

// SearchBooks handles the paginated catalog listing
// @Summary Search books
// @Description Case-insensitive match on title, author or ISBN, optionally within a section
// @Tags Books
// @Produce json
// @Param query query string false "Search text"
// @Param section query int false "Section ID"
// @Param page query int false "Page"
// @Param per_page query int false "Books per page"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	req := dto.SearchBooksRequest{
		Query:     r.URL.Query().Get("query"),
		SectionID: queryInt(r, "section", 0),
		Page:      queryInt(r, "page", 1),
		PerPage:   queryInt(r, "per_page", usecase.DefaultPerPage),
	}

	page, err := h.bookUsecase.SearchBooks(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to search books")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Books retrieved successfully", page.Books, &response.Meta{
		Page:       page.Page,
		Limit:      page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
	})
}

// LiveSearch handles the type-ahead search
// @Summary Live search books
// @Description Returns the first matches, or an empty list when no filter is given
// @Tags Books
// @Produce json
// @Param query query string false "Search text"
// @Param section query int false "Section ID"
// @Success 200 {object} response.Response
// @Router /search [get]
func (h *BookHandler) LiveSearch(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookUsecase.LiveSearch(r.Context(), r.URL.Query().Get("query"), queryInt(r, "section", 0))
	if err != nil {
		writeError(w, err, "Failed to search books")
		return
	}

	response.Success(w, http.StatusOK, "Books retrieved successfully", books)
}

// GetBook handles getting a book by ID
// @Summary Get book
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid book ID", nil)
		return
	}

	book, err := h.bookUsecase.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get book")
		return
	}

	response.Success(w, http.StatusOK, "Book retrieved successfully", book)
}

// CreateBook handles adding a book to the catalog
// @Summary Create book
// @Tags Books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBookRequest true "Create Book Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	book, err := h.bookUsecase.CreateBook(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create book")
		return
	}

	response.Success(w, http.StatusCreated, "Book created successfully", book)
}

// UpdateBook handles updating a book
// @Summary Update book
// @Tags Books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Update Book Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid book ID", nil)
		return
	}

	var req dto.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	book, err := h.bookUsecase.UpdateBook(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update book")
		return
	}

	response.Success(w, http.StatusOK, "Book updated successfully", book)
}

// DeleteBook handles removing a book
// @Summary Delete book
// @Tags Books
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid book ID", nil)
		return
	}

	if err := h.bookUsecase.DeleteBook(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete book")
		return
	}

	response.Success(w, http.StatusOK, "Book deleted successfully", nil)
}
