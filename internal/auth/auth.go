package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"golang.org/x/crypto/argon2"
)

// DefaultAuthFile is used when AUTH_FILE is not set.
const DefaultAuthFile = "auth.secret"

// Argon2id parameters
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

var (
	ErrInvalidHash     = errors.New("invalid argon2id hash")
	ErrInvalidAuthFile = errors.New("invalid auth file format (expected: username:hash)")
	ErrFileExists      = errors.New("auth file already exists")
)

// Credentials is the admin user and its Argon2id hash.
type Credentials struct {
	User string
	Hash string
}

// HashPassword creates an Argon2id hash of the password in PHC string format.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyPassword verifies a password against an Argon2id hash.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: hash: %v", ErrInvalidHash, err)
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// LoadCredentials reads "username:hash" from path. A missing file yields nil
// credentials and no error; admin routes are then disabled.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: no auth file at %s; admin routes disabled", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	user, hash, ok := strings.Cut(strings.TrimSpace(string(data)), ":")
	if !ok || user == "" || hash == "" {
		return nil, ErrInvalidAuthFile
	}

	log.Printf("INFO: admin basic auth enabled (user: %s, file: %s)", user, path)
	return &Credentials{User: user, Hash: hash}, nil
}

// CreateAuthFile writes username and the hash of password to path (mode 0400).
func CreateAuthFile(path, username, password string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
		// 0400 files cannot be truncated in place.
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(path, []byte(content), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}

// Middleware protects a route group with basic auth against creds. With nil
// credentials every request is refused.
func Middleware(creds *Credentials) fiber.Handler {
	if creds == nil {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusForbidden, "admin routes are disabled")
		}
	}

	return basicauth.New(basicauth.Config{
		Realm: "historical-day admin",
		Authorizer: func(user, pass string) bool {
			if subtle.ConstantTimeCompare([]byte(user), []byte(creds.User)) != 1 {
				log.Printf("WARN: failed admin auth attempt (user: %s)", user)
				return false
			}
			ok, err := VerifyPassword(pass, creds.Hash)
			if err != nil {
				log.Printf("ERROR: verifying admin password: %v", err)
				return false
			}
			if !ok {
				log.Printf("WARN: failed admin auth attempt (user: %s)", user)
			}
			return ok
		},
	})
}
