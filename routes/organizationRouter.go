package routes

import (
	"go-restaurant-operations/controllers"

	"github.com/gin-gonic/gin"
)

func OrganizationRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/organization", controllers.GetOrganization())
	incomingRoutes.PATCH("/organization/plan", controllers.UpdateOrganizationPlan())
}
