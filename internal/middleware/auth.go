package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// CallerConfig controls how CallerMiddleware establishes the caller identity.
type CallerConfig struct {
	// JWTSecret verifies HS256 bearer tokens; the caller is the "sub" claim.
	JWTSecret string
	// Header is trusted as the caller identity when JWTSecret is empty.
	Header string
}

// CallerMiddleware resolves the caller identity of a request. Requests without
// credentials pass through with no caller; handlers that need one reject them.
// A bearer token that fails verification is rejected here.
func CallerMiddleware(cfg CallerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.JWTSecret == "" {
			if cfg.Header != "" {
				if caller := strings.TrimSpace(c.GetHeader(cfg.Header)); caller != "" {
					c.Set(callerKey, caller)
				}
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		caller, err := verifyToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// Caller returns the identity resolved by CallerMiddleware, or "".
func Caller(c *gin.Context) string {
	return c.GetString(callerKey)
}

func verifyToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
