package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealtrack-v2/backend/internal/api"
	"github.com/pageza/mealtrack-v2/backend/internal/middleware"
	"github.com/pageza/mealtrack-v2/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	mealHandler *api.MealHandler,
	profileHandler *api.ProfileHandler,
	authService service.IAuthService,
	rateLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// The meal flow works with or without a logged-in user
	meals := v1.Group("/meals")
	meals.Use(middleware.OptionalAuth(authService))
	{
		analyze := meals.Group("")
		if rateLimiter != nil {
			analyze.Use(rateLimiter.RateLimitMiddleware())
		}
		analyze.POST("/analyze", mealHandler.Analyze)

		meals.POST("", mealHandler.Save)
		meals.GET("/today", mealHandler.ListToday)
		meals.GET("/summary", mealHandler.Summary)
	}

	profile := v1.Group("/profile")
	profile.Use(middleware.AuthMiddleware(authService))
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.UpdateProfile)
	}

	return router
}
