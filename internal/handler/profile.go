package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/identity"
	"github.com/metamingle/server/internal/service/mingle"
)

// ProfileReq is the create/update payload.
type ProfileReq struct {
	Name      string   `json:"name" binding:"required"`
	Bio       string   `json:"bio"`
	Age       uint32   `json:"age" binding:"required"`
	Interests []string `json:"interests"`
}

func profileView(p *db.Profile) gin.H {
	return gin.H{
		"owner":     p.Owner,
		"name":      p.Name,
		"bio":       p.Bio,
		"age":       p.Age,
		"interests": p.Interests,
	}
}

// CreateProfile registers the caller's profile.
func CreateProfile(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req ProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid profile payload")
			return
		}

		if err := svc.CreateProfile(c.Request.Context(), p, mingle.ProfileInput{
			Name:      req.Name,
			Bio:       req.Bio,
			Age:       req.Age,
			Interests: req.Interests,
		}); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"owner": p.String()})
	}
}

// UpdateProfile replaces the caller's profile fields.
func UpdateProfile(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := caller(c)
		if !ok {
			return
		}

		var req ProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid profile payload")
			return
		}

		if err := svc.UpdateProfile(c.Request.Context(), p, mingle.ProfileInput{
			Name:      req.Name,
			Bio:       req.Bio,
			Age:       req.Age,
			Interests: req.Interests,
		}); err != nil {
			fail(c, err)
			return
		}
		success(c, gin.H{"owner": p.String()})
	}
}

// GetProfile looks up any principal's profile. A missing profile is an
// empty result, not an error.
func GetProfile(svc *mingle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := caller(c); !ok {
			return
		}

		subject, err := identity.Parse(c.Param("identity"))
		if err != nil {
			badRequest(c, "invalid identity")
			return
		}

		profile, err := svc.GetProfile(c.Request.Context(), subject)
		if err != nil {
			fail(c, err)
			return
		}
		if profile == nil {
			success(c, gin.H{"profile": nil})
			return
		}
		success(c, gin.H{"profile": profileView(profile)})
	}
}
