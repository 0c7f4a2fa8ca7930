package middleware

import (
	"errors"
	"strings"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	identityKey     = "identity"
	bearerPrefix    = "Bearer "
	accessTokenType = "access"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid access token")
	ErrNotAdmin      = errors.New("admin role required")
	ErrNoIdentityCtx = errors.New("request carries no identity")
	ErrNoSigningKey  = errors.New("no token signing key configured")
)

// Identity is the authenticated caller, taken from the access token.
type Identity struct {
	UserID  string
	IsAdmin bool
}

type Claims struct {
	UserID    string `json:"user_id"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Auth accepts HS256 access tokens signed with secret. Token issuance lives
// outside this service. With an empty secret every request is rejected.
func Auth(secret []byte) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *fiber.Ctx) error {
		if len(secret) == 0 {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrNoSigningKey)
		}

		raw, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), bearerPrefix)
		if !ok || raw == "" {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrMissingToken)
		}

		var claims Claims
		token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			return service.NewServiceError(constants.ErrCodeUnauthorized, errors.Join(ErrInvalidToken, err))
		}

		if claims.TokenType != accessTokenType || claims.UserID == "" {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrInvalidToken)
		}

		c.Locals(identityKey, Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin})

		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrNoIdentityCtx)
		}

		if !identity.IsAdmin {
			return service.NewServiceError(constants.ErrCodeForbidden, ErrNotAdmin)
		}

		return c.Next()
	}
}

func GetIdentity(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}

// SignAccessToken is the counterpart of Auth, used by tests and local tooling.
func SignAccessToken(secret []byte, claims Claims) (string, error) {
	if claims.TokenType == "" {
		claims.TokenType = accessTokenType
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
