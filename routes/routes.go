package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fotostudio-backend/controllers"
	"fotostudio-backend/middleware"
	"fotostudio-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the gin engine. uploadsDir may be empty
// when gallery files live in an object store instead of local disk.
func SetupRouter(
	bc *controllers.BookingController,
	gc *controllers.GalleryController,
	ac *controllers.AuthController,
	authSvc *services.AuthService,
	uploadsDir string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// public surface
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.Store)
			bookings.GET("/public/dates", bc.PublicDates)

			// must come after /public/dates so the static segment wins
			bookings.GET("/:public_id", bc.Show)
		}

		api.GET("/gallery", gc.Index)

		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.GET("/check", ac.CheckRegistrationStatus)
			auth.POST("/forgot-password", ac.ForgotPassword)
			auth.POST("/reset-password", ac.ResetPassword)
		}

		// admin surface, gated by the bearer token
		admin := api.Group("", middleware.RequireAuth(authSvc))
		{
			admin.GET("/bookings", bc.Index)
			admin.PATCH("/bookings/:public_id/status", bc.UpdateStatus)
			admin.POST("/gallery", gc.Store)
			admin.DELETE("/gallery/:id", gc.Destroy)
			admin.POST("/auth/logout", ac.Logout)
		}
	}

	return r
}
