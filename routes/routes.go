package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"rental-backend/controllers"
	"rental-backend/middleware"
	"rental-backend/services"
)

const (
	loginRateLimit  = 5
	loginRatePeriod = time.Minute
)

type Options struct {
	CORSOrigins []string
	// UploadDir is served at UploadURL when uploads are stored locally.
	UploadDir string
	UploadURL string
	Redis     *redis.Client
}

// SetupRouter wires controllers to routes. Mutating routes require an
// admin session.
func SetupRouter(
	pc *controllers.PropertyController,
	uc *controllers.UploadController,
	ac *controllers.AuthController,
	auth *services.AuthService,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	if opts.UploadDir != "" && opts.UploadURL != "" {
		r.Static(opts.UploadURL, opts.UploadDir)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAdmin := middleware.RequireAdmin(auth)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		properties := api.Group("/properties")
		{
			properties.GET("", pc.GetProperties)
			properties.POST("/filter", pc.FilterProperties)

			// static segments must be registered before /:id
			properties.GET("/search/:term", pc.SearchProperties)
			properties.GET("/locations", pc.GetLocations)
			properties.GET("/:id", pc.GetProperty)

			properties.POST("", requireAdmin, pc.CreateProperty)
			properties.PUT("/:id", requireAdmin, pc.UpdateProperty)
			properties.DELETE("/:id", requireAdmin, pc.DeleteProperty)
		}

		api.POST("/upload", requireAdmin, uc.UploadImages)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", middleware.RateLimiter(opts.Redis, "login", loginRateLimit, loginRatePeriod), ac.Login)
			authGroup.POST("/logout", ac.Logout)
			authGroup.GET("/me", requireAdmin, ac.Me)
		}
	}

	return r
}
