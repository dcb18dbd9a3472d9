package testutils

import (
	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/internal/api/routes"
	"github.com/formforge/formforge/internal/application"
)

func SetupRouter(services *application.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, services)
	return r
}
