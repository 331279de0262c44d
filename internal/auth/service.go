package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurumpos/backend/internal/users"
	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/aurumpos/backend/pkg/db/models"
	pkgerrors "github.com/aurumpos/backend/pkg/errors"
	"github.com/aurumpos/backend/pkg/security"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the credential store surface.
type Service interface {
	Enroll(ctx context.Context, input EnrollInput) (int64, error)
	Authenticate(ctx context.Context, username, rawPassword string) (*Operator, error)
}

type service struct {
	users       userRepository
	passwordCfg config.PasswordConfig
	validate    *validator.Validate
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateCredential(ctx context.Context, id int64, credential string) error
}

// ServiceParams bundles the dependencies required to build the credential store.
type ServiceParams struct {
	UserRepo       userRepository
	PasswordConfig config.PasswordConfig
}

// NewService constructs a credential store with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       params.UserRepo,
		passwordCfg: params.PasswordConfig,
		validate:    validator.New(),
	}, nil
}

// Enroll stores a new operator with a salted hash of the password. The
// raw password is never written.
func (s *service) Enroll(ctx context.Context, input EnrollInput) (int64, error) {
	if err := s.validate.Struct(input); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid enrollment input")
	}
	if !input.Role.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", input.Role))
	}

	hashed, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Username:   input.Username,
		Credential: hashed,
		Role:       input.Role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "users.username") {
			return 0, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("username %q already exists", input.Username))
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create user")
	}
	return user.ID, nil
}

// Authenticate verifies the password against the stored credential.
// Legacy plaintext credentials that match are rewritten as an Argon2id
// hash before the call returns; a failed legacy comparison writes nothing.
func (s *service) Authenticate(ctx context.Context, username, rawPassword string) (*Operator, error) {
	// An empty password can never be enrolled or hashed, so it can never
	// authenticate, even against an empty legacy credential.
	if rawPassword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find user")
	}
	if !user.Active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	cred := security.ParseCredential(user.Credential)
	ok, err := cred.Matches(rawPassword)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if cred.Kind() == security.CredentialLegacy {
		if err := s.migrateLegacyCredential(ctx, user, rawPassword); err != nil {
			return nil, err
		}
	}

	return &Operator{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// migrateLegacyCredential performs the one-time plaintext rewrite. The
// login only succeeds once the new hash is durably stored.
func (s *service) migrateLegacyCredential(ctx context.Context, user *models.User, rawPassword string) error {
	hashed, err := security.HashPassword(rawPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash migrated credential")
	}
	if err := s.users.UpdateCredential(ctx, user.ID, hashed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "store migrated credential")
	}
	user.Credential = hashed
	return nil
}
