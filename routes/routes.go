package routes

import (
	"net/http"
	"time"

	"gemtrade/handlers"
	"gemtrade/middleware"
	"gemtrade/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterOnboardingRoutes registers the registration endpoint and the
// diagnostic echo at the root, matching the public surface.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/register", hb.Registration.RegisterHandler)
	r.GET("/hello", handlers.HelloHandler)
}

// RegisterSessionRoutes registers the session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/signup", hb.Session.SignUpHandler)
		api.POST("/signin", hb.Session.SignInHandler)
		api.POST("/confirm", hb.Session.ConfirmHandler)
		api.POST("/resend-code", hb.Session.ResendCodeHandler)
		api.POST("/forgot-password", hb.Session.ForgotPasswordHandler)
		api.POST("/reset-password", hb.Session.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.SessionAuthMiddleware(hb.Revoker))
		api.GET("/me", hb.Session.CurrentHandler)
		api.POST("/signout", hb.Session.SignOutHandler)
		api.PATCH("/profile", hb.Session.UpdateProfileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterOnboardingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterHealthRoute(r)
}
