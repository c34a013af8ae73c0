package converter

import (
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
)

// PurchaseToResponse converts a Purchase entity to PurchaseResponse DTO
// Book title is included when the book is loaded
func PurchaseToResponse(purchase *entity.Purchase) *dto.PurchaseResponse {
	if purchase == nil {
		return nil
	}

	response := &dto.PurchaseResponse{
		ID:           purchase.ID,
		BookID:       purchase.BookID,
		Price:        purchase.Price,
		Status:       string(purchase.Status),
		PurchaseDate: purchase.PurchaseDate,
	}

	if purchase.Book != nil {
		response.BookTitle = purchase.Book.Title
	}

	return response
}

func PurchasesToResponses(purchases []entity.Purchase) []dto.PurchaseResponse {
	responses := make([]dto.PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = *PurchaseToResponse(&purchases[i])
	}
	return responses
}

func PurchaseSettingsToResponse(settings *entity.PurchaseSettings) *dto.PurchaseSettingsResponse {
	if settings == nil {
		return nil
	}

	return &dto.PurchaseSettingsResponse{
		AllowStudentPurchases: settings.AllowStudentPurchases,
		DefaultBookPrice:      settings.DefaultBookPrice,
		UpdatedAt:             settings.UpdatedAt,
	}
}
