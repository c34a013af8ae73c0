package dto

import "time"

// Request DTOs

type CreateBookRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=256"`
	Author    string `json:"author" validate:"required,min=1,max=128"`
	ISBN      string `json:"isbn" validate:"omitempty,max=20"`
	Genre     string `json:"genre" validate:"omitempty,max=64"`
	SectionID int    `json:"section_id" validate:"required,gt=0"`
	Available *bool  `json:"available"`
}

type UpdateBookRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=256"`
	Author    string `json:"author" validate:"required,min=1,max=128"`
	ISBN      string `json:"isbn" validate:"omitempty,max=20"`
	Genre     string `json:"genre" validate:"omitempty,max=64"`
	SectionID int    `json:"section_id" validate:"required,gt=0"`
	Available bool   `json:"available"`
}

// SearchBooksRequest carries the query-string filters of a catalog search.
type SearchBooksRequest struct {
	Query     string
	SectionID int
	Page      int
	PerPage   int
}

// Response DTOs

type BookResponse struct {
	ID        int                 `json:"id"`
	Title     string              `json:"title"`
	Author    string              `json:"author"`
	ISBN      *string             `json:"isbn"`
	Genre     string              `json:"genre"`
	Available bool                `json:"available"`
	Section   *SectionRefResponse `json:"section"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type BookPageResponse struct {
	Books      []BookResponse `json:"books"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
}
