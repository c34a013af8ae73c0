package entity

import "time"

// Role represents a user role in the system
type Role struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        RoleName  `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:varchar(256)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleAdmin     RoleName = "Admin"
	RoleLibrarian RoleName = "Librarian"
	RoleStudent   RoleName = "Student"
)

// Capability is an operation gated by role.
type Capability string

const (
	CapManageCatalog    Capability = "catalog.manage"
	CapManageLibrarians Capability = "librarians.manage"
	CapManageSettings   Capability = "settings.manage"
	CapViewAudit        Capability = "audit.view"
	CapPurchaseBooks    Capability = "books.purchase"
)

var roleCapabilities = map[RoleName][]Capability{
	RoleAdmin:     {CapManageCatalog, CapManageLibrarians, CapManageSettings, CapViewAudit},
	RoleLibrarian: {CapManageCatalog},
	RoleStudent:   {CapPurchaseBooks},
}

// DefaultRoles are seeded at startup when missing.
var DefaultRoles = []Role{
	{Name: RoleAdmin, Description: "System administrator with full privileges"},
	{Name: RoleLibrarian, Description: "Library staff with management access"},
	{Name: RoleStudent, Description: "Library user with limited access"},
}

// ParseRoleName matches s against the known roles.
func ParseRoleName(s string) (RoleName, bool) {
	for name := range roleCapabilities {
		if string(name) == s {
			return name, true
		}
	}
	return "", false
}

// Can reports whether the role is allowed to perform c.
func (r RoleName) Can(c Capability) bool {
	for _, allowed := range roleCapabilities[r] {
		if allowed == c {
			return true
		}
	}
	return false
}

// Capabilities lists what the role may do, in table order.
func (r RoleName) Capabilities() []Capability {
	caps := make([]Capability, len(roleCapabilities[r]))
	copy(caps, roleCapabilities[r])
	return caps
}

func (r RoleName) IsAdmin() bool     { return r == RoleAdmin }
func (r RoleName) IsLibrarian() bool { return r == RoleLibrarian }
func (r RoleName) IsStudent() bool   { return r == RoleStudent }

func (r RoleName) String() string {
	return string(r)
}
