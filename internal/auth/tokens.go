// Package auth issues and verifies bearer tokens and holds the authorization guards the services
// call before touching the store.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	MsgTokenMissing = "token missing"
	MsgTokenInvalid = "token invalid or expired"
)

// Identity is the caller as asserted by a verified token. It is not re-checked against the store.
type Identity struct {
	ID      uuid.UUID
	Email   string
	IsAdmin bool
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the clock used for iat/exp and for the expiry check.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(id Identity) (string, error) {
	claims := tokens.NewAccessClaims(id.ID.String(), id.Email, id.IsAdmin, s.now(), s.ttl)
	return tokens.SignAccessToken(claims, s.secret)
}

// Verify is the strict verifier: it requires "Bearer <token>" in the Authorization header value.
func (s *TokenService) Verify(authorization string) (*Identity, error) {
	raw := bearerToken(authorization)
	if raw == "" {
		return nil, apperr.Authentication(MsgTokenMissing)
	}
	claims, err := tokens.AccessClaimsFromToken(raw, s.secret, s.now)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindAuthentication, Message: MsgTokenInvalid, Err: err}
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindAuthentication, Message: MsgTokenInvalid, Err: err}
	}
	return &Identity{ID: uid, Email: claims.Email, IsAdmin: claims.IsAdmin}, nil
}

// Optional never fails: a missing or bad token yields nil.
func (s *TokenService) Optional(authorization string) *Identity {
	id, err := s.Verify(authorization)
	if err != nil {
		return nil
	}
	return id
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
