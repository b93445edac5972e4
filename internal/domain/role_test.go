package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{" Admin ", RoleAdmin},
		{"seller", RoleSeller},
		{"vendedor", RoleSeller},
		{"VENDEDOR", RoleSeller},
		{"customer", RoleCustomer},
		{"cliente", RoleCustomer},
		{"CLIENTE", RoleCustomer},
		{"", RoleCustomer},
		{"whatever", RoleCustomer},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeRole(tc.in), "input %q", tc.in)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCustomer.Valid())
	assert.True(t, RoleSeller.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("vendedor").Valid())
	assert.False(t, Role("").Valid())
}
