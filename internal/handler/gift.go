package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/service/mingle"
)

// CreateGiftReq is the request payload for adding a catalog entry.
type CreateGiftReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
}

// SendGiftReq names the transfer recipient; the gift id comes from the path.
type SendGiftReq struct {
	To string `json:"to" binding:"required"`
}

// CreateGift adds an entry to the shared catalog.
func CreateGift(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req CreateGiftReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid gift payload")
			return
		}

		id, err := svc.CreateGift(c.Request.Context(), p, mingle.GiftInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"gift_id": id})
	}
}

// GetGift looks up a catalog entry. A missing gift is an empty result.
func GetGift(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := caller(c); !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid gift id")
			return
		}

		gift, err := svc.GetGift(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if gift == nil {
			success(c, gin.H{"gift": nil})
			return
		}
		success(c, gin.H{"gift": gin.H{
			"id":          gift.ID,
			"name":        gift.Name,
			"description": gift.Description,
			"price":       gift.Price,
			"creator":     gift.Creator,
		}})
	}
}

// SendGift appends a transfer record for the gift in the path.
func SendGift(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, "invalid gift id")
			return
		}

		var req SendGiftReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid transfer payload")
			return
		}

		to, err := identity.Parse(req.To)
		if err != nil {
			badRequest(c, "invalid recipient identity")
			return
		}

		if err := svc.SendGift(c.Request.Context(), p, id, to); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"gift_id": id, "to": to.String()})
	}
}

// ListGiftTransfers returns the caller's transfer history, paginated.
func ListGiftTransfers(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				badRequest(c, "invalid limit")
				return
			}
			limit = n
		}

		var token *string
		if raw := c.Query("cursor"); raw != "" {
			token = &raw
		}

		transfers, next, err := svc.ListGiftTransfers(c.Request.Context(), p, token, limit)
		if err != nil {
			fail(c, err)
			return
		}

		views := make([]gin.H, len(transfers))
		for i, tr := range transfers {
			views[i] = gin.H{
				"gift_id": tr.GiftID,
				"from":    tr.From,
				"to":      tr.To,
			}
		}
		data := gin.H{"transfers": views}
		if next != nil {
			data["next_cursor"] = *next
		}
		success(c, data)
	}
}
