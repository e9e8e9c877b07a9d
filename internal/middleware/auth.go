package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/metamingle/server/internal/identity"
)

// principalKey is the gin context key the auth middleware stores the
// caller under.
const principalKey = "principal"

// Auth validates the bearer token and stores the caller principal in the
// request context. The host environment is the authenticator; the token's
// subject claim is the only thing this service consumes.
func Auth(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "Unauthenticated",
				"error": "missing bearer token",
			})
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithIssuer(issuer))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "Unauthenticated",
				"error": "invalid or expired token",
			})
			return
		}

		principal, err := identity.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "Unauthenticated",
				"error": "invalid subject claim",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CallerPrincipal returns the authenticated caller stored by Auth.
func CallerPrincipal(c *gin.Context) (identity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return "", false
	}
	p, ok := v.(identity.Principal)
	return p, ok
}

// SignToken mints a token for the given principal. Used by cmd/seed and
// tests; production tokens come from the external authenticator.
func SignToken(secret, issuer string, p identity.Principal) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: p.String(),
	})
	return token.SignedString([]byte(secret))
}
