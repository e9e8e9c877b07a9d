package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/middleware"
)

// success writes the uniform success envelope.
func success(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{
		"code": "OK",
		"data": data,
	})
}

// fail maps a service error onto the uniform error envelope.
func fail(c *gin.Context, err error) {
	status, code := svcErr.Map(err)
	c.JSON(status, gin.H{
		"code":  code,
		"error": err.Error(),
	})
}

// badRequest rejects malformed input before it reaches the service.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":  "BadRequest",
		"error": msg,
	})
}

// caller fetches the authenticated principal, failing the request if the
// auth middleware did not run.
func caller(c *gin.Context) (identity.Principal, bool) {
	p, ok := middleware.CallerPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":  "Unauthenticated",
			"error": "no caller principal",
		})
	}
	return p, ok
}
