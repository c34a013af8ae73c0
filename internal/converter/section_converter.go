package converter

import (
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
)

func SectionToResponse(section *entity.Section) *dto.SectionResponse {
	if section == nil {
		return nil
	}

	return &dto.SectionResponse{
		ID:          section.ID,
		Name:        section.Name,
		Description: section.Description,
		CreatedAt:   section.CreatedAt,
		UpdatedAt:   section.UpdatedAt,
	}
}

func SectionsToResponses(sections []entity.Section) []dto.SectionResponse {
	responses := make([]dto.SectionResponse, len(sections))
	for i := range sections {
		responses[i] = *SectionToResponse(&sections[i])
	}
	return responses
}
