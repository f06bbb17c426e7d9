package main

import (
	"context"
	"log"
	"os"
	"time"

	"go-restaurant-operations/database"
	middleware "go-restaurant-operations/middleware"
	routes "go-restaurant-operations/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}
	cancel()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// token-free surfaces first: onboarding and the table ordering channel
	routes.AuthRoutes(router)
	routes.PublicRoutes(router)

	router.Use(middleware.Authentication())
	routes.UserRoutes(router)
	routes.OrganizationRoutes(router)
	routes.TableRoutes(router)
	routes.MenuItemRoutes(router)
	routes.OrderRoutes(router)

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
