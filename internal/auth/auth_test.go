package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))

	other, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")

	ok, err := VerifyPassword("s3cret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("s3cret", "$bcrypt$nope")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = VerifyPassword("s3cret", "$argon2id$v=19$m=65536,t=1,p=4$!!!$abc")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestCreateAndLoadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultAuthFile)

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Nil(t, creds)

	require.NoError(t, CreateAuthFile(path, "admin", "pw", false))
	assert.ErrorIs(t, CreateAuthFile(path, "admin", "pw2", false), ErrFileExists)
	require.NoError(t, CreateAuthFile(path, "root", "pw2", true))

	creds, err = LoadCredentials(path)
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "root", creds.User)

	ok, err := VerifyPassword("pw2", creds.Hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoadCredentials_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.secret")
	require.NoError(t, os.WriteFile(path, []byte("no-colon-here\n"), 0600))

	_, err := LoadCredentials(path)
	assert.ErrorIs(t, err, ErrInvalidAuthFile)
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestMiddleware(t *testing.T) {
	hash, err := HashPassword("letmein")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(Middleware(&Credentials{User: "admin", Hash: hash}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no credentials", "", http.StatusUnauthorized},
		{"wrong user", basic("root", "letmein"), http.StatusUnauthorized},
		{"wrong password", basic("admin", "nope"), http.StatusUnauthorized},
		{"valid", basic("admin", "letmein"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", basic("admin", "x"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
