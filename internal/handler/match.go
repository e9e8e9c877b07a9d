package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/service/mingle"
)

// GenerateMatches recomputes the caller's match set.
func GenerateMatches(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		if err := svc.GenerateMatches(c.Request.Context(), p); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"owner": p.String()})
	}
}

// GetMatches returns the caller's generated matches, best first.
func GetMatches(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		list, err := svc.GetMatches(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}

		views := make([]gin.H, len(list))
		for i, m := range list {
			views[i] = gin.H{
				"counterpart": m.Counterpart,
				"score":       m.Score,
			}
		}
		success(c, gin.H{"matches": views})
	}
}
