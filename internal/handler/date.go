package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/service/mingle"
)

// ScheduleDateReq is the request payload for scheduling a virtual date.
type ScheduleDateReq struct {
	With        string `json:"with" binding:"required"`
	ScheduledAt int64  `json:"scheduled_at" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

func dateView(d *db.Date) gin.H {
	return gin.H{
		"id":           d.ID,
		"scheduler":    d.Scheduler,
		"invitee":      d.Invitee,
		"scheduled_at": d.ScheduledAt,
		"location":     d.Location,
		"status":       d.Status,
	}
}

// ScheduleDate records a date between the caller and a connected party.
func ScheduleDate(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req ScheduleDateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid date payload")
			return
		}

		with, err := identity.Parse(req.With)
		if err != nil {
			badRequest(c, "invalid participant identity")
			return
		}

		id, err := svc.ScheduleDate(c.Request.Context(), p, with, req.ScheduledAt, req.Location)
		if err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"date_id": id})
	}
}

// GetDate looks up a date by id. A missing date is an empty result.
func GetDate(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := caller(c); !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid date id")
			return
		}

		date, err := svc.GetDate(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if date == nil {
			success(c, gin.H{"date": nil})
			return
		}
		success(c, gin.H{"date": dateView(date)})
	}
}
