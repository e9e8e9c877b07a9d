package server

import "github.com/gin-gonic/gin"

// Registrar is a common interface for all API route registrars
type Registrar interface {
	Register(g *gin.RouterGroup)
}
