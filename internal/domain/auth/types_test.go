package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{"admin", RoleAdmin, true},
		{"user", RoleUser, true},
		{"empty", Role(""), false},
		{"unknown", Role("superuser"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Valid())
		})
	}
}

func TestPrincipalIsAdmin(t *testing.T) {
	assert.True(t, Principal{ID: "a1", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Principal{ID: "u1", Role: RoleUser}.IsAdmin())
}
