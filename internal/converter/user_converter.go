package converter

import (
	"librarylens/internal/delivery/dto"
	"librarylens/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Role is empty unless it was preloaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.Name.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
