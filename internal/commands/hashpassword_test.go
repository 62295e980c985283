package commands

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/historical-day/internal/auth"
)

func TestRunHashPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.secret")
	in := bufio.NewReader(strings.NewReader("admin\npw\npw\n"))

	err := runHashPassword(path, false, in, func(string) (string, error) { return readLine(in) })
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "admin:$argon2id$"))

	creds, err := auth.LoadCredentials(path)
	require.NoError(t, err)
	ok, err := auth.VerifyPassword("pw", creds.Hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunHashPassword_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty username", "\npw\npw\n", "username"},
		{"colon in username", "a:b\npw\npw\n", "username"},
		{"empty password", "admin\n\n\n", "empty"},
		{"mismatch", "admin\npw\npx\n", "do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "auth.secret")
			in := bufio.NewReader(strings.NewReader(tt.input))
			err := runHashPassword(path, false, in, func(string) (string, error) { return readLine(in) })
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
