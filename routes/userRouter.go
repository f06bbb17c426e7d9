package routes

import (
	"go-restaurant-operations/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes are the unauthenticated onboarding endpoints.
func AuthRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/signup", controllers.SignUp())
	incomingRoutes.POST("/users/login", controllers.Login())
}

// UserRoutes are the staff-seat management endpoints behind authentication.
func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/users", controllers.GetUsers())
	incomingRoutes.GET("/users/:user_id", controllers.GetUser())
	incomingRoutes.POST("/users", controllers.CreateUser())
}
