package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/security"
)

// ErrInvalidCredentials is returned for any username/password mismatch so
// callers cannot distinguish unknown accounts from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

type userFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// CredentialVerifier checks a username/password pair and yields the account.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*models.User, error)
}

// DBVerifier verifies credentials against stored argon2id hashes.
type DBVerifier struct {
	users userFinder
}

// NewDBVerifier builds the database-backed verifier.
func NewDBVerifier(users userFinder) (*DBVerifier, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &DBVerifier{users: users}, nil
}

// Verify resolves the account and compares the password hash.
func (v *DBVerifier) Verify(ctx context.Context, username, password string) (*models.User, error) {
	name := strings.TrimSpace(username)
	if name == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := v.users.FindByUsername(ctx, strings.ToLower(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, security.ErrInvalidHash) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

var _ CredentialVerifier = (*DBVerifier)(nil)
