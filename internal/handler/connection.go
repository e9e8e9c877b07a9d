package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/service/mingle"
)

// SendConnectionReq is the request payload for opening a connection.
type SendConnectionReq struct {
	To string `json:"to" binding:"required"`
}

// RespondConnectionReq resolves a pending request addressed to the caller.
// Accept is a pointer so "accept": false binds correctly.
type RespondConnectionReq struct {
	From   string `json:"from" binding:"required"`
	Accept *bool  `json:"accept" binding:"required"`
}

// SendConnectionRequest opens a pending request from the caller.
func SendConnectionRequest(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req SendConnectionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid connection payload")
			return
		}

		to, err := identity.Parse(req.To)
		if err != nil {
			badRequest(c, "invalid recipient identity")
			return
		}

		if err := svc.SendConnectionRequest(c.Request.Context(), p, to); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"status": "pending"})
	}
}

// RespondToRequest accepts or rejects a pending request.
func RespondToRequest(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req RespondConnectionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid respond payload")
			return
		}

		from, err := identity.Parse(req.From)
		if err != nil {
			badRequest(c, "invalid sender identity")
			return
		}

		if err := svc.RespondToRequest(c.Request.Context(), p, from, *req.Accept); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"accepted": *req.Accept})
	}
}

// ListConnections returns the caller's accepted counterparts.
func ListConnections(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		conns, err := svc.ListConnections(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}

		views := make([]string, len(conns))
		for i, cp := range conns {
			views[i] = cp.String()
		}
		success(c, gin.H{"connections": views})
	}
}

// ListPendingRequests returns requests awaiting the caller's response.
func ListPendingRequests(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		reqs, err := svc.ListPendingRequests(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}

		views := make([]gin.H, len(reqs))
		for i, r := range reqs {
			views[i] = gin.H{
				"from":   r.From,
				"to":     r.To,
				"status": r.Status,
			}
		}
		success(c, gin.H{"requests": views})
	}
}
