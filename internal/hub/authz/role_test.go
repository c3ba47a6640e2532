package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTotalOrder(t *testing.T) {
	ordered := Roles()
	require.Equal(t, []Role{RoleViewer, RoleEditor, RoleAdmin, RoleOwner}, ordered)

	// ranks are strictly increasing along the catalog order
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, Rank(ordered[i]), Rank(ordered[i-1]))
	}

	// no two distinct roles compare equal
	for _, a := range ordered {
		for _, b := range ordered {
			if a != b {
				assert.NotEqual(t, Rank(a), Rank(b))
			}
		}
	}
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		a, b Role
		want bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleOwner, RoleOwner, true},
		{RoleAdmin, RoleOwner, false},
		{RoleAdmin, RoleEditor, true},
		{RoleEditor, RoleAdmin, false},
		{RoleEditor, RoleViewer, true},
		{RoleViewer, RoleViewer, true},
		{RoleViewer, RoleEditor, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AtLeast(tt.a, tt.b), "AtLeast(%s, %s)", tt.a, tt.b)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRankUnknownRole(t *testing.T) {
	// unknown roles rank below viewer so they can never manage anyone
	assert.Equal(t, -1, Rank(Role("intruder")))
	assert.False(t, Role("intruder").Valid())
}
