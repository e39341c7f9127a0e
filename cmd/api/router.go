package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festivals-backend/internal/shared/middleware"
	"festivals-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.AcceptJSON(),
	)

	router.GET("/", welcomeHandler)

	router.OPTIONS("/login", c.AuthHandler.LoginOptions)
	router.POST("/login", c.AuthHandler.Login)
	router.GET("/profile", middleware.RequireToken(c.JWTManager), c.AuthHandler.Profile)

	festivals := router.Group("/festivals")
	{
		festivals.OPTIONS("", c.FestivalHandler.CollectionOptions)
		festivals.GET("", c.FestivalHandler.List)
		festivals.POST("", c.FestivalHandler.Create)
		festivals.POST("/seed", middleware.RequireToken(c.JWTManager), c.FestivalHandler.Seed)

		festivals.OPTIONS("/:id", c.FestivalHandler.ResourceOptions)
		festivals.GET("/:id", c.FestivalHandler.Get)
		festivals.PUT("/:id", c.FestivalHandler.Replace)
		festivals.PATCH("/:id", c.FestivalHandler.Patch)
		festivals.DELETE("/:id", c.FestivalHandler.Delete)
	}

	return router
}

func welcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welkom bij de Festivals Webservice, gebruik /festivals om festivals te bekijken!",
	})
}
