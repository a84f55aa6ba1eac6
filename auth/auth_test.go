package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicsense/types"
)

func TestIssueParseRoundtrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Issue("user-42", types.RoleOfficer, "Water Supply")
	require.NoError(t, err)

	principal, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", principal.Subject)
	assert.Equal(t, types.RoleOfficer, principal.Role)
	assert.Equal(t, "Water Supply", principal.Department)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").Issue("user-1", types.RoleCitizen, "")
	require.NoError(t, err)

	_, err = NewManager("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret").Parse("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}
