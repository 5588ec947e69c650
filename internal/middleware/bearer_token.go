package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

type BearerTokenMiddleware struct {
	secret    []byte
	adminRole string
}

func NewBearerTokenMiddleware(secret, adminRole string) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{secret: []byte(secret), adminRole: adminRole}
}

// ValidateToken validates and parses a JWT token
func (m *BearerTokenMiddleware) ValidateToken(tokenString string) (*models.TokenInfo, error) {
	if len(m.secret) == 0 {
		return nil, errors.New("token verification is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	info := &models.TokenInfo{
		Subject:  claims.Subject,
		Username: claims.Username,
		Roles:    claims.Roles,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// BearerTokenAuthMiddleware validates JWT token and sets user info in context
func (m *BearerTokenMiddleware) BearerTokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenInfo, err := m.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logrus.WithError(err).Debug("Rejected bearer token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", tokenInfo.Subject)
		c.Set("token_info", tokenInfo)

		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin role.
// Must run after BearerTokenAuthMiddleware.
func (m *BearerTokenMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("token_info")
		tokenInfo, ok := value.(*models.TokenInfo)
		if !exists || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims := models.JWTClaims{Roles: tokenInfo.Roles}
		if !claims.HasRole(m.adminRole) {
			logrus.WithFields(logrus.Fields{
				"user_id": tokenInfo.Subject,
				"path":    c.Request.URL.Path,
			}).Warn("Admin route called without admin role")
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
