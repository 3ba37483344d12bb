package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/internal/auth"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const (
	MsgInvalidCredentials = "invalid email or password"
	MsgEmailInUse         = "Email already in use"
)

// Session is what register and login hand back to the client.
type Session struct {
	Token   string `json:"token"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

type Service struct {
	Repo   Repository
	Hasher *hash.Hasher
	Tokens *auth.TokenService
	Events *events.Emitter
}

func NewService(repo Repository, hasher *hash.Hasher, tokens *auth.TokenService, em *events.Emitter) *Service {
	return &Service{Repo: repo, Hasher: hasher, Tokens: tokens, Events: em}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "users.register")

	user, err := s.createUser(ctx, in, false)
	if err != nil {
		logFailure(l, "register_error", err)
		return nil, err
	}

	token, err := s.Tokens.Issue(identityOf(user))
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, apperr.Internal(err)
	}

	s.Events.Emit(ctx, events.TopicUsers, user.ID.String(), "user_registered", eventPayload(user))
	l.Info("user_registered", "user_id", user.ID.String())
	return &Session{Token: token, Email: user.Email, Name: user.FirstName, IsAdmin: user.IsAdmin}, nil
}

// Login answers unknown email and wrong password with the same error value.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "users.login")

	if err := apperr.FromValidation(in.Validate()); err != nil {
		l.Warn("login_error", "status", 400, "reason", "validation failed")
		return nil, err
	}

	user, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		l.Error("login_error", "status", 500, "error", err)
		return nil, apperr.Internal(err)
	}

	ok := false
	if user != nil {
		ok, err = s.Hasher.CheckPassword(ctx, user.PasswordHash, in.Password)
		if err != nil {
			l.Error("login_error", "status", 500, "reason", "cannot compare password", "error", err)
			return nil, apperr.Internal(err)
		}
	}
	if !ok {
		l.Warn("login_error", "status", 401, "reason", "invalid credentials")
		return nil, apperr.Authentication(MsgInvalidCredentials)
	}

	token, err := s.Tokens.Issue(identityOf(user))
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, apperr.Internal(err)
	}
	l.Info("user_logged_in", "user_id", user.ID.String())
	return &Session{Token: token, Email: user.Email, Name: user.FirstName, IsAdmin: user.IsAdmin}, nil
}

// CreateAdmin requires the requestor to be an admin according to the store, not only to the
// token, so a demoted admin holding an unexpired token is refused here.
func (s *Service) CreateAdmin(ctx context.Context, requestor *auth.Identity, in RegisterInput) (*User, error) {
	l := logging.FromContext(ctx).With("svc", "users.create_admin")

	if err := auth.RequireAuthenticated(requestor); err != nil {
		return nil, err
	}
	current, err := s.Repo.FindByID(ctx, requestor.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		l.Warn("create_admin_error", "status", 403, "reason", "requestor no longer exists")
		return nil, apperr.Authorization("admin access required")
	case err != nil:
		l.Error("create_admin_error", "status", 500, "error", err)
		return nil, apperr.Internal(err)
	case !current.IsAdmin:
		l.Warn("create_admin_error", "status", 403, "reason", "requestor is not an admin", "user_id", requestor.ID.String())
		return nil, apperr.Authorization("admin access required")
	}

	admin, err := s.createUser(ctx, in, true)
	if err != nil {
		logFailure(l, "create_admin_error", err)
		return nil, err
	}

	s.Events.Emit(ctx, events.TopicUsers, admin.ID.String(), "admin_created", eventPayload(admin))
	l.Info("admin_created", "user_id", admin.ID.String(), "created_by", requestor.ID.String())
	return admin, nil
}

// Bootstrap creates an admin without a requestor. It backs the CLI and is not reachable over HTTP.
func (s *Service) Bootstrap(ctx context.Context, in RegisterInput) (*User, error) {
	admin, err := s.createUser(ctx, in, true)
	if err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, events.TopicUsers, admin.ID.String(), "admin_created", eventPayload(admin))
	return admin, nil
}

func (s *Service) createUser(ctx context.Context, in RegisterInput, isAdmin bool) (*User, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}

	exists, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict(MsgEmailInUse)
	}

	pwHash, err := s.Hasher.HashPassword(ctx, in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: pwHash,
		IsAdmin:      isAdmin,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.Conflict(MsgEmailInUse)
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func identityOf(u *User) auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

func eventPayload(u *User) map[string]any {
	return map[string]any{"id": u.ID.String(), "email": u.Email, "isAdmin": u.IsAdmin}
}

func logFailure(l *slog.Logger, msg string, err error) {
	k := apperr.KindOf(err)
	if k == apperr.KindInternal {
		l.Error(msg, "status", k.Status(), "error", err)
		return
	}
	l.Warn(msg, "status", k.Status(), "reason", k.String(), "error", err)
}
