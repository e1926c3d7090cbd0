package usecases

import (
	"context"
	"net/mail"
	"strings"

	"github.com/waheedridwan/geopoints/internal/core/domain"
	"github.com/waheedridwan/geopoints/internal/core/ports"
	"github.com/waheedridwan/geopoints/internal/pkg/auth"
	"github.com/waheedridwan/geopoints/internal/pkg/metrics"
)

// MinUsernameLength is the shortest username the API will accept.
const MinUsernameLength = 3

// UserService handles registration, authentication, and account
// administration.
type UserService struct {
	users  ports.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(users ports.UserRepository, hasher *auth.Hasher, tokens *auth.TokenManager) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a regular account. Callers cannot grant themselves
// superuser through this path; use CreateUser for that.
func (s *UserService) Register(ctx context.Context, in domain.UserCreate) (*domain.User, error) {
	in.IsSuperuser = nil
	return s.createUser(ctx, in)
}

// CreateUser creates an account on behalf of an administrator, honoring the
// is_active and is_superuser flags.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, in domain.UserCreate) (*domain.User, error) {
	if !actor.IsSuperuser {
		return nil, domain.NewAuthorization("not enough privileges")
	}
	return s.createUser(ctx, in)
}

func (s *UserService) createUser(ctx context.Context, in domain.UserCreate) (*domain.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if len(username) < MinUsernameLength {
		return nil, domain.NewValidation("username must be at least %d characters", MinUsernameLength)
	}

	if taken, err := s.users.EmailExists(ctx, email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.NewConflict("a user with this email already exists")
	}
	if taken, err := s.users.UsernameExists(ctx, username, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.NewConflict("a user with this username already exists")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	isSuperuser := in.IsSuperuser != nil && *in.IsSuperuser

	return s.users.Create(ctx, email, username, hashed, isActive, isSuperuser)
}

// Authenticate verifies credentials and issues a bearer token. The login may
// be either email or username. Failures are deliberately indistinct.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (domain.Token, error) {
	user, err := s.users.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		return domain.Token{}, err
	}
	if user == nil || !s.hasher.Verify(password, user.HashedPassword) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return domain.Token{}, domain.NewAuthentication("incorrect username or password")
	}
	if !user.IsActive {
		metrics.AuthFailures.WithLabelValues("inactive").Inc()
		return domain.Token{}, domain.NewAuthentication("inactive user")
	}

	if _, err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return domain.Token{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.Token{}, err
	}
	metrics.TokensIssued.Inc()
	return token, nil
}

// Logout revokes the given token for the remainder of its lifetime.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}
	metrics.TokensRevoked.Inc()
	return nil
}

// CurrentUser resolves a bearer token to its live, active account.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Validate(ctx, token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewAuthentication("could not validate credentials")
	}
	if !user.IsActive {
		return nil, domain.NewAuthentication("inactive user")
	}
	return user, nil
}

// List returns a page of users. Superuser only.
func (s *UserService) List(ctx context.Context, actor *domain.User, page, limit int) ([]domain.User, int, error) {
	if !actor.IsSuperuser {
		return nil, 0, domain.NewAuthorization("not enough privileges")
	}
	offset, size := pageWindow(page, limit)

	users, err := s.users.List(ctx, offset, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetUser returns a single account. Users may read themselves; anyone else
// requires superuser.
func (s *UserService) GetUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if actor.ID != id && !actor.IsSuperuser {
		return nil, domain.NewAuthorization("not enough privileges")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("user %s not found", id)
	}
	return user, nil
}

// UpdateUser applies a partial update. Regular users may only edit
// themselves and cannot touch the privilege flags.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id string, patch domain.UserPatch) (*domain.User, error) {
	if actor.ID != id && !actor.IsSuperuser {
		return nil, domain.NewAuthorization("not enough privileges")
	}
	if !actor.IsSuperuser && (patch.IsActive != nil || patch.IsSuperuser != nil) {
		return nil, domain.NewAuthorization("not enough privileges")
	}

	store := domain.UserStorePatch{
		IsActive:    patch.IsActive,
		IsSuperuser: patch.IsSuperuser,
	}

	if patch.Email != nil {
		email, err := normalizeEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		if taken, err := s.users.EmailExists(ctx, email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.NewConflict("a user with this email already exists")
		}
		store.Email = &email
	}
	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if len(username) < MinUsernameLength {
			return nil, domain.NewValidation("username must be at least %d characters", MinUsernameLength)
		}
		if taken, err := s.users.UsernameExists(ctx, username, id); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.NewConflict("a user with this username already exists")
		}
		store.Username = &username
	}
	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		store.HashedPassword = &hashed
	}

	user, err := s.users.Update(ctx, id, store)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("user %s not found", id)
	}
	return user, nil
}

// DeleteUser removes an account. Superuser only, and not on yourself.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsSuperuser {
		return domain.NewAuthorization("not enough privileges")
	}
	if actor.ID == id {
		return domain.NewBadRequest("cannot delete your own account")
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFound("user %s not found", id)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.NewValidation("invalid email address")
	}
	return email, nil
}
