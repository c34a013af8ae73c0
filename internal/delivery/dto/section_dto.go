package dto

import "time"

// Request DTOs

type SectionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=64"`
	Description string `json:"description" validate:"omitempty"`
}

// Response DTOs

type SectionResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SectionRefResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
