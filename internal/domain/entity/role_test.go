package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleName_Can(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleAdmin.Can(CapManageCatalog))
	assert.True(t, RoleAdmin.Can(CapManageLibrarians))
	assert.True(t, RoleAdmin.Can(CapManageSettings))
	assert.True(t, RoleAdmin.Can(CapViewAudit))
	assert.False(t, RoleAdmin.Can(CapPurchaseBooks))

	assert.True(t, RoleLibrarian.Can(CapManageCatalog))
	assert.False(t, RoleLibrarian.Can(CapManageLibrarians))
	assert.False(t, RoleLibrarian.Can(CapPurchaseBooks))

	assert.True(t, RoleStudent.Can(CapPurchaseBooks))
	assert.False(t, RoleStudent.Can(CapManageCatalog))

	assert.False(t, RoleName("Guest").Can(CapPurchaseBooks))
}

func TestParseRoleName(t *testing.T) {
	t.Parallel()

	role, ok := ParseRoleName("Librarian")
	assert.True(t, ok)
	assert.Equal(t, RoleLibrarian, role)

	_, ok = ParseRoleName("librarian")
	assert.False(t, ok)
}

func TestRoleName_CapabilitiesIsACopy(t *testing.T) {
	t.Parallel()

	caps := RoleLibrarian.Capabilities()
	caps[0] = CapViewAudit

	assert.Equal(t, []Capability{CapManageCatalog}, RoleLibrarian.Capabilities())
}

func TestUser_Classify(t *testing.T) {
	t.Parallel()

	user := &User{Role: Role{Name: RoleStudent}}
	assert.Equal(t, RoleStudent, user.Classify())
	assert.True(t, user.IsStudent())
	assert.False(t, user.IsAdmin())
	assert.False(t, user.IsLibrarian())
}
