package routes

import (
	"go-restaurant-operations/controllers"

	"github.com/gin-gonic/gin"
)

// PublicRoutes serve the table-token ordering channel; no authentication, the
// access token is the capability.
func PublicRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/public/tables/:access_token/orders", controllers.CreatePublicOrder())
	incomingRoutes.GET("/public/tables/:access_token/orders", controllers.GetPublicOrders())
}
