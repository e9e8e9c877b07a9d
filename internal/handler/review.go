package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/service/mingle"
)

// SubmitReviewReq is the request payload for reviewing a date.
// DateID is a pointer because 0 is a valid id.
type SubmitReviewReq struct {
	DateID   *uint64 `json:"date_id" binding:"required"`
	Reviewee string  `json:"reviewee" binding:"required"`
	Rating   uint32  `json:"rating"`
	Comment  string  `json:"comment"`
}

// SubmitReview records the caller's review and completes the date.
func SubmitReview(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req SubmitReviewReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid review payload")
			return
		}

		reviewee, err := identity.Parse(req.Reviewee)
		if err != nil {
			badRequest(c, "invalid reviewee identity")
			return
		}

		if err := svc.SubmitReview(c.Request.Context(), p, *req.DateID, reviewee, req.Rating, req.Comment); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"date_id": *req.DateID})
	}
}

// ListDateReviews returns the reviews of a date.
func ListDateReviews(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := caller(c); !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid date id")
			return
		}

		reviews, err := svc.ListDateReviews(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}

		views := make([]gin.H, len(reviews))
		for i, r := range reviews {
			views[i] = gin.H{
				"date_id":  r.DateID,
				"reviewer": r.Reviewer,
				"reviewee": r.Reviewee,
				"rating":   r.Rating,
				"comment":  r.Comment,
			}
		}
		success(c, gin.H{"reviews": views})
	}
}
