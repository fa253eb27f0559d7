// Package auth issues and verifies HS256 bearer tokens.
//
// Tokens are stateless: a token stays valid until its exp claim passes, and
// verification never consults the credential store.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the principal identity. The user id travels in sub.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenVerifier turns a bearer token into the principal it was issued for.
type TokenVerifier interface {
	Verify(token string) (*models.Principal, error)
}

// Option configures an Issuer or a Verifier.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Issuer signs tokens with the process-wide secret.
type Issuer struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewIssuer returns an Issuer or common.ErrConfiguration when the secret is
// empty or the default TTL is negative.
func NewIssuer(secret []byte, defaultTTL time.Duration, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret is empty", common.ErrConfiguration)
	}
	if defaultTTL < 0 {
		return nil, fmt.Errorf("%w: negative token ttl", common.ErrConfiguration)
	}
	o := buildOptions(opts)
	return &Issuer{secret: secret, defaultTTL: defaultTTL, now: o.now}, nil
}

// DefaultTTL is the lifetime used by IssueDefault.
func (i *Issuer) DefaultTTL() time.Duration { return i.defaultTTL }

// Issue signs {sub, username, iat, exp=iat+ttl} for p.
func (i *Issuer) Issue(p models.Principal, ttl time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IssueDefault issues a token with the configured default TTL.
func (i *Issuer) IssueDefault(p models.Principal) (string, error) {
	return i.Issue(p, i.defaultTTL)
}

// Verifier checks signature and expiry of tokens signed by an Issuer with the
// same secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ TokenVerifier = (*Verifier)(nil)

// NewVerifier returns a Verifier or common.ErrConfiguration for an empty
// secret.
func NewVerifier(secret []byte, opts ...Option) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret is empty", common.ErrConfiguration)
	}
	o := buildOptions(opts)
	return &Verifier{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(o.now),
		),
	}, nil
}

// Verify returns the principal encoded in token. Failures match
// common.ErrorUnauthorized; expired tokens additionally match
// common.ErrTokenExpired and everything else common.ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*models.Principal, error) {
	claims := &Claims{}

	token, err := v.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return &models.Principal{UserID: claims.Subject, Username: claims.Username}, nil
}
