package session

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/simplemovies/errors"
)

// Claims are the token claims. The subject is the user ID.
type Claims struct {
	gojwt.RegisteredClaims
	Username string `json:"username"`
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a Tokens from a validated Config.
func NewTokens(cfg Config) *Tokens {
	cfg.ApplyDefaults()
	return &Tokens{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: cfg.TokenTTL, now: time.Now}
}

// Issue signs a token for the user. Every token gets a random ID.
func (t *Tokens) Issue(userID, username string) (string, error) {
	now := t.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    t.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(t.ttl)),
		},
		Username: username,
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of token. Failures are
// TOKEN_EXPIRED or INVALID_TOKEN AppErrors.
func (t *Tokens) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, t.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(t.issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired().WithCause(err)
		}
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, apperrors.InvalidToken()
	}
	return claims, nil
}

func (t *Tokens) keyFunc(token *gojwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return t.secret, nil
}

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

var _ TokenVerifier = (*Tokens)(nil)
