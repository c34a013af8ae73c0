package entity

import "time"

// User is an account that can sign in to the catalog
type User struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	RoleID       int       `gorm:"not null;index" json:"role_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Classify returns the role of a user loaded together with its Role.
func (u *User) Classify() RoleName {
	return u.Role.Name
}

func (u *User) IsAdmin() bool     { return u.Classify().IsAdmin() }
func (u *User) IsLibrarian() bool { return u.Classify().IsLibrarian() }
func (u *User) IsStudent() bool   { return u.Classify().IsStudent() }
