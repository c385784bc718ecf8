package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rryowa/sagra_admin/internal/util"
)

// SessionTokenService signs the value of the browser session cookie. The
// token only names a server-side session; it carries no API credentials.
type SessionTokenService struct {
	secret []byte
	maxAge time.Duration
}

func NewSessionTokenService(cfg *util.SessionConfig) *SessionTokenService {
	return &SessionTokenService{
		secret: cfg.Secret,
		maxAge: cfg.MaxAge,
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (ts *SessionTokenService) MaxAge() time.Duration {
	return ts.maxAge
}

// Issue creates an HS512 signed token for sessionID.
func (ts *SessionTokenService) Issue(sessionID string, now time.Time) (string, error) {
	claims := &sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.maxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("signed string: %w", err)
	}

	return signedToken, nil
}

// Parse validates token and returns the session ID it names.
func (ts *SessionTokenService) Parse(token string) (string, error) {
	return ts.parse(token,
		jwt.WithLeeway(util.JWTLeeWay),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(NowTimeFunc),
	)
}

// ParseIgnoringExpiry checks the signature of token but not its time claims.
// Login uses it to take over the slot named by an expired cookie.
func (ts *SessionTokenService) ParseIgnoringExpiry(token string) (string, error) {
	return ts.parse(token, jwt.WithoutClaimsValidation())
}

func (ts *SessionTokenService) parse(token string, extra ...jwt.ParserOption) (string, error) {
	opts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	}, extra...)

	parsedToken, err := jwt.ParseWithClaims(
		token,
		&sessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
				return nil, ErrInvalidSigningMethod
			}
			return ts.secret, nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := parsedToken.Claims.(*sessionClaims)
	if !ok || !parsedToken.Valid || claims.SessionID == "" || claims.Subject != claims.SessionID {
		return "", ErrTokenInvalid
	}

	return claims.SessionID, nil
}
