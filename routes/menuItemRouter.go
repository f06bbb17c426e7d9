package routes

import (
	"go-restaurant-operations/controllers"

	"github.com/gin-gonic/gin"
)

func MenuItemRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menu-items", controllers.GetMenuItems())
	incomingRoutes.POST("/menu-items", controllers.CreateMenuItem())
	incomingRoutes.PATCH("/menu-items/:menu_item_id", controllers.UpdateMenuItem())
	incomingRoutes.DELETE("/menu-items/:menu_item_id", controllers.DeleteMenuItem())
}
