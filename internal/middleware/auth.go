package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FinanceClaims are the JWT claims issued by the platform's identity service.
// The subject is the user id; organization and role ride as custom claims.
type FinanceClaims struct {
	OrganizationID string `json:"org_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and places the resulting actor (user, organization, role) on the request
// context. Token issuance belongs to the external identity service; this core
// only verifies.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.ParseWithClaims(tokenString, &FinanceClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Check the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*FinanceClaims)
		if !ok || !token.Valid {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if claims.Subject == "" || claims.OrganizationID == "" {
			logger.Error("User ID or organization missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// organization_id columns are UUID-typed; reject malformed claims here
		// rather than letting every query fail with a cast error.
		if err := uuid.Validate(claims.OrganizationID); err != nil {
			logger.Warn("Organization claim is not a valid UUID", slog.String("org_id", claims.OrganizationID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		role := domain.Role(claims.Role)
		if !role.Valid() {
			logger.Warn("Unrecognized role in token", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unrecognized role"})
			return
		}

		actor := domain.Actor{
			UserID:         claims.Subject,
			OrganizationID: claims.OrganizationID,
			Role:           role,
		}

		// Store the actor in the context (using standard context)
		ctxWithActor := context.WithValue(c.Request.Context(), actorKey, actor)

		// Add actor fields to the logger
		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("user_id", actor.UserID),
			slog.String("organization_id", actor.OrganizationID),
		)

		// Store the *enriched* logger back into the standard context
		ctxWithLoggerAndActor := context.WithValue(ctxWithActor, loggerCtxKey, enrichedLogger)

		// Update the request context
		c.Request = c.Request.WithContext(ctxWithLoggerAndActor)

		c.Next()
	}
}
