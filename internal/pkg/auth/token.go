package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// Blacklist records revoked tokens until they would have expired anyway.
// The in-memory implementation covers a single process; the valkey-backed
// one makes revocation visible across replicas.
type Blacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenManager issues and validates HS256 bearer tokens. The user id rides
// in the subject claim. Tokens cannot be refreshed; once expired the user
// must authenticate again.
type TokenManager struct {
	secret    []byte
	expiry    time.Duration
	blacklist Blacklist
	now       func() time.Time
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret string, expiry time.Duration, blacklist Blacklist) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		expiry:    expiry,
		blacklist: blacklist,
		now:       time.Now,
	}
}

// Issue signs a token for the given user id.
func (m *TokenManager) Issue(userID string) (domain.Token, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return domain.Token{}, domain.NewInternal(err)
	}
	return domain.Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// Validate checks signature, expiry, and the blacklist, returning the
// subject (user id) of a live token.
func (m *TokenManager) Validate(ctx context.Context, token string) (string, error) {
	claims, err := m.parse(token)
	if err != nil {
		return "", err
	}

	revoked, err := m.blacklist.IsRevoked(ctx, token)
	if err != nil {
		return "", domain.NewInternal(err)
	}
	if revoked {
		return "", domain.NewAuthentication("token has been revoked")
	}

	return claims.Subject, nil
}

// Revoke blacklists a token for the remainder of its lifetime. Revoking an
// already-expired or malformed token is treated as an authentication error,
// consistent with Validate.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil // already dead, nothing to record
	}
	if err := m.blacklist.Revoke(ctx, token, ttl); err != nil {
		return domain.NewInternal(err)
	}
	return nil
}

func (m *TokenManager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.NewAuthentication("could not validate credentials")
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.NewAuthentication("could not validate credentials")
	}
	return claims, nil
}
