package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/app"
	"github.com/metamingle/server/internal/service/mingle"
)

// Registrar ties the mingle handlers into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the mingle API
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches every public operation to the authenticated route group
func (r *Registrar) Register(g *gin.RouterGroup) {
	svc := mingle.NewService(r.appCtx)

	g.POST("/profile", CreateProfile(svc))
	g.PUT("/profile", UpdateProfile(svc))
	g.GET("/profiles/:identity", GetProfile(svc))

	g.POST("/connections", SendConnectionRequest(svc))
	g.POST("/connections/respond", RespondToRequest(svc))
	g.GET("/connections", ListPendingRequests(svc))
	g.GET("/connections/active", ListConnections(svc))

	g.POST("/dates", ScheduleDate(svc))
	g.GET("/dates/:id", GetDate(svc))
	g.GET("/dates/:id/reviews", ListDateReviews(svc))
	g.POST("/reviews", SubmitReview(svc))

	g.POST("/gifts", CreateGift(svc))
	g.GET("/gifts/:id", GetGift(svc))
	g.POST("/gifts/:id/send", SendGift(svc))
	g.GET("/transfers", ListGiftTransfers(svc))

	g.POST("/matches/generate", GenerateMatches(svc))
	g.GET("/matches", GetMatches(svc))
}
