package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("superuser").Valid())
}

func TestUserCanModerate(t *testing.T) {
	t.Parallel()

	assert.False(t, (&User{Role: RoleUser}).CanModerate())
	assert.True(t, (&User{Role: RoleModerator}).CanModerate())
	assert.True(t, (&User{Role: RoleAdmin}).CanModerate())
}

func TestUserCanEditResource(t *testing.T) {
	t.Parallel()

	author := &User{ID: 1, Role: RoleUser}
	other := &User{ID: 2, Role: RoleUser}
	moderator := &User{ID: 3, Role: RoleModerator}
	admin := &User{ID: 4, Role: RoleAdmin}

	assert.True(t, author.CanEditResource(1))
	assert.False(t, other.CanEditResource(1))
	assert.True(t, moderator.CanEditResource(1))
	assert.True(t, admin.CanEditResource(1))
}
