package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// tokenClaims carries the user id in sub and the role name in role.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for userID with role. Tokens are normally issued by
// the identity collaborator; this is used by tests and local tooling.
func IssueToken(secret string, userID kernel.UUID, role user.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func unauthenticated(reason string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrUnauthenticated, reason, cause)
	}
	return fmt.Errorf("%w: %s", errs.ErrUnauthenticated, reason)
}

// ParseToken validates an HS256 bearer token and resolves its principal.
func ParseToken(secret, token string) (user.Principal, error) {
	if secret == "" {
		return user.Principal{}, errors.New("jwt secret is empty")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return user.Principal{}, unauthenticated("invalid token", err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return user.Principal{}, unauthenticated("invalid subject", err)
	}

	role, err := user.ParseRole(strings.ToLower(claims.Role))
	if err != nil {
		return user.Principal{}, unauthenticated("invalid role", err)
	}

	principal, err := user.NewPrincipal(userID, role)
	if err != nil {
		return user.Principal{}, unauthenticated("invalid principal", err)
	}
	return principal, nil
}

// JWTAuth rejects requests without a valid bearer token and stores the caller's
// principal in the echo context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return writeError(c, unauthenticated("missing bearer token", nil))
			}

			principal, err := ParseToken(secret, strings.TrimSpace(token))
			if err != nil {
				return writeError(c, err)
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (user.Principal, error) {
	p, ok := c.Get(principalContextKey).(user.Principal)
	if !ok {
		return user.Principal{}, unauthenticated("no principal", nil)
	}
	return p, nil
}
