package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsHex24(t *testing.T) {
	id := NewID()
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-fA-F]{24}$`), id)
	assert.True(t, IsID(id))
	assert.NotEqual(t, id, NewID())
	assert.False(t, IsID("not-an-id"))
}

func TestUserValidate(t *testing.T) {
	u := User{Username: "  alice "}
	require.NoError(t, u.Validate())
	assert.Equal(t, "alice", u.Username)
	assert.NotNil(t, u.Projects)
	assert.NotNil(t, u.Reports)

	empty := User{Username: "   "}
	assert.Error(t, empty.Validate())
}

func TestProjectValidate(t *testing.T) {
	p := Project{Name: "apollo"}
	require.NoError(t, p.Validate())
	assert.Empty(t, p.Users)

	assert.Error(t, (&Project{}).Validate())
}

func TestTotalHours(t *testing.T) {
	assert.Zero(t, TotalHours(nil))
	assert.Equal(t, 45.0, TotalHours([]Report{{Hours: 20}, {Hours: 25}}))
}
