package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	jwtPkg "github.com/salman-gourmet/bookmyagents/pkg/jwt"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header is missing",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	// Logged-out tokens stay blacklisted in Redis until they expire.
	if m.redisServer != nil {
		if rawToken, err := jwtPkg.RawTokenFromHeader(ctx); err == nil {
			revoked, err := m.redisServer.IsTokenRevoked(contextPkg.FromFiberCtx(ctx), rawToken)
			if err != nil {
				m.log.WithFields(logrus.Fields{
					"error": err.Error(),
				}).Warn("Token revocation check failed")
			} else if revoked {
				m.log.WithFields(logrus.Fields{
					"path": ctx.Path(),
				}).Warn("Revoked token presented")
				return unauthorized(ctx)
			}
		}
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"error": "Invalid token claims",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	fullName, _ := claims["full_name"].(string)

	if id == "" || email == "" || !entity.UserRole(role).Valid() {
		m.log.WithFields(logrus.Fields{
			"error": "Token claims are missing required fields",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	user := entity.UserLoginData{
		ID:       id,
		FullName: fullName,
		Email:    email,
		Role:     entity.UserRole(role),
	}
	ctx.Locals("user", user)

	return ctx.Next()
}

// RequireAdmin must run after NewTokenMiddleware.
func (m *middleware) RequireAdmin(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	if !user.IsAdmin() {
		m.log.WithFields(logrus.Fields{
			"path":    ctx.Path(),
			"user_id": user.ID,
			"role":    user.Role,
		}).Warn("Admin-only route denied")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	return ctx.Next()
}

// RequireAgent admits agents and admins; must run after NewTokenMiddleware.
func (m *middleware) RequireAgent(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	if !user.IsAgent() && !user.IsAdmin() {
		m.log.WithFields(logrus.Fields{
			"path":    ctx.Path(),
			"user_id": user.ID,
			"role":    user.Role,
		}).Warn("Agent-only route denied")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Agent access required",
		})
	}

	return ctx.Next()
}
