package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"biocard-backend/internal/shared/server/middleware"
	"biocard-backend/internal/shared/telemetry"
)

var (
	// ErrInvalidCredentials means the username/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken means an account with the username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidAccountType means the requested account type is not creatable.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrForbidden means the caller may not perform the operation on the target.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidToken means the presented token matched no account.
	ErrInvalidToken = errors.New("invalid token")
)

// ProfileProvisioner is the slice of the profile service accounts need:
// every account owns exactly one profile document, created at signup and
// removed, assets included, when the account goes away.
type ProfileProvisioner interface {
	CreateEmpty(ctx context.Context, ownerID uuid.UUID, username string) error
	DeleteOwner(ctx context.Context, ownerID uuid.UUID, username string) error
}

// Service implements account signup, signin, token validation and
// administrative account management.
type Service struct {
	Repo     Repo
	Profiles ProfileProvisioner
}

// NewService constructs a Service.
func NewService(repo Repo, profiles ProfileProvisioner) *Service {
	return &Service{Repo: repo, Profiles: profiles}
}

// Signup registers a new account of the given type and provisions its
// profile document. Root accounts cannot be created through signup.
func (s *Service) Signup(ctx context.Context, username, password, accountType string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}
	switch accountType {
	case "":
		accountType = TypeUser
	case TypeUser, TypeAdmin:
	default:
		return Account{}, ErrInvalidAccountType
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return Account{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Type:         accountType,
		Token:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}
	if err := s.Profiles.CreateEmpty(ctx, acct.ID, acct.Username); err != nil {
		return Account{}, fmt.Errorf("provision profile: %w", err)
	}

	telemetry.Info("account.created", map[string]any{
		"username": acct.Username,
		"type":     acct.Type,
	})
	return acct, nil
}

// Signin checks the credentials and returns the account with its token.
func (s *Service) Signin(ctx context.Context, username, password string) (Account, error) {
	acct, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, err
	}
	if !VerifyPassword(acct.PasswordHash, password) {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// ValidateToken resolves a bearer token to the identity it belongs to.
// It satisfies middleware.TokenValidator.
func (s *Service) ValidateToken(ctx context.Context, token string) (middleware.Identity, error) {
	acct, err := s.Repo.GetByToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return middleware.Identity{}, ErrInvalidToken
	}
	if err != nil {
		return middleware.Identity{}, err
	}
	return middleware.Identity{
		UserID:   acct.ID.String(),
		Username: acct.Username,
		Type:     acct.Type,
	}, nil
}

// DeleteSelf removes the caller's account together with its profile and
// stored assets. Root accounts cannot be deleted.
func (s *Service) DeleteSelf(ctx context.Context, id uuid.UUID) error {
	acct, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if acct.Type == TypeRoot {
		return ErrForbidden
	}
	return s.remove(ctx, acct)
}

// AdminDelete removes another account by username. The root account is
// protected and admins cannot delete themselves through this path.
func (s *Service) AdminDelete(ctx context.Context, requester middleware.Identity, username string) error {
	acct, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if acct.Type == TypeRoot {
		return ErrForbidden
	}
	if strings.EqualFold(acct.Username, requester.Username) {
		return ErrForbidden
	}
	return s.remove(ctx, acct)
}

// List returns every account as a username/type summary.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.Repo.List(ctx)
}

// EnsureRoot provisions the root account on startup if it does not exist
// yet. A no-op when the username is unset.
func (s *Service) EnsureRoot(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	acct := Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Type:         TypeRoot,
		Token:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		return err
	}
	if err := s.Profiles.CreateEmpty(ctx, acct.ID, acct.Username); err != nil {
		return fmt.Errorf("provision profile: %w", err)
	}

	telemetry.Info("account.root_seeded", map[string]any{"username": acct.Username})
	return nil
}

// EnsureFromGoogle finds or provisions the account backing a Google
// sign-in and returns it with a valid token. Provisioned accounts get a
// random password hash since they authenticate externally.
func (s *Service) EnsureFromGoogle(ctx context.Context, email string) (Account, error) {
	username := strings.TrimSpace(email)
	if username == "" {
		return Account{}, ErrInvalidCredentials
	}
	acct, err := s.Repo.GetByUsername(ctx, username)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}
	return s.Signup(ctx, username, uuid.NewString(), TypeUser)
}

func (s *Service) remove(ctx context.Context, acct Account) error {
	if err := s.Profiles.DeleteOwner(ctx, acct.ID, acct.Username); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}
	if err := s.Repo.Delete(ctx, acct.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	telemetry.Info("account.deleted", map[string]any{
		"username": acct.Username,
		"type":     acct.Type,
	})
	return nil
}
