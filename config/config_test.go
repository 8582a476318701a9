package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`users:
  - username: admin
    password: geheim
    role: admin
  - username: piet
    password: wachtwoord
    role: user
`), 0600))

	users, err := loadUsers(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "user", users[1].Role)
}

func TestLoadUsers_MissingFileDisablesAPI(t *testing.T) {
	users, err := loadUsers(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, users)
}

func TestLoadUsers_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: {not: [a list"), 0600))

	_, err := loadUsers(path)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	cfg := &Config{Users: []User{
		{Username: "admin", Password: "geheim", Role: "admin"},
	}}

	user := cfg.Authenticate("admin", "geheim")
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Role)

	assert.Nil(t, cfg.Authenticate("admin", "fout"))
	assert.Nil(t, cfg.Authenticate("onbekend", "geheim"))
	assert.Nil(t, cfg.Authenticate("", ""))
}

func TestIsAllowedUser(t *testing.T) {
	cfg := &Config{ReminderChatID: 100, AllowedTelegramIDs: []int64{200, 300}}

	assert.True(t, cfg.IsAllowedUser(100))
	assert.True(t, cfg.IsAllowedUser(200))
	assert.True(t, cfg.IsAllowedUser(300))
	assert.False(t, cfg.IsAllowedUser(400))
}
