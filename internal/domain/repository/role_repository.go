package repository

import (
	"context"

	"librarylens/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, db *gorm.DB, role *entity.Role) error
	FindByName(ctx context.Context, db *gorm.DB, name entity.RoleName) (*entity.Role, error)
}
