package converter

import (
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
)

// BookToResponse converts a Book entity to BookResponse DTO.
// section is the book's resolved owner and may be nil.
func BookToResponse(book *entity.Book, section *entity.Section) *dto.BookResponse {
	if book == nil {
		return nil
	}

	response := &dto.BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		ISBN:      book.ISBN,
		Genre:     book.Genre,
		Available: book.Available,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}

	if section != nil {
		response.Section = &dto.SectionRefResponse{
			ID:   section.ID,
			Name: section.Name,
		}
	}

	return response
}

func BookPageToResponse(books []dto.BookResponse, page entity.Pagination) *dto.BookPageResponse {
	if books == nil {
		books = []dto.BookResponse{}
	}

	return &dto.BookPageResponse{
		Books:      books,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
	}
}
