package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Tinnitussen/DAT250/auth"
	"github.com/Tinnitussen/DAT250/config"
	"github.com/Tinnitussen/DAT250/controllers"
	"github.com/Tinnitussen/DAT250/middleware"
	"github.com/Tinnitussen/DAT250/repositories"
	"github.com/Tinnitussen/DAT250/services"
)

// SetupCORS configures cross-origin access for browser clients that
// authenticate with the session cookie.
func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	postRepo := repositories.NewPostRepository(db, friendRepo)
	commentRepo := repositories.NewCommentRepository(db)

	// Session and password handling
	sessions := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.CookieDomain, cfg.CookieSecure)
	hasher := auth.NewBcryptHasher()
	emailService := services.NewEmailService(cfg)

	// Controllers
	authController := controllers.NewAuthController(userRepo, sessions, hasher, emailService, logger)
	streamController := controllers.NewStreamController(userRepo, postRepo, cfg.UploadsDir, logger)
	commentController := controllers.NewCommentController(postRepo, commentRepo, logger)
	friendController := controllers.NewFriendController(userRepo, friendRepo, logger)
	profileController := controllers.NewProfileController(userRepo, logger)
	uploadController := controllers.NewUploadController(cfg.UploadsDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Public composite login/register form, rate limited.
	authLimit := middleware.RateLimit(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	r.GET("/", authController.Index)
	r.POST("/", authLimit, authController.Submit)
	r.GET("/index", authController.Index)
	r.POST("/index", authLimit, authController.Submit)

	// Everything else requires an authenticated session.
	protected := r.Group("/")
	protected.Use(middleware.Auth(sessions))
	{
		protected.GET("/stream/:username", streamController.GetStream)
		protected.POST("/stream/:username", streamController.CreatePost)

		protected.GET("/comments/:username/:post_id", commentController.GetComments)
		protected.POST("/comments/:username/:post_id", commentController.CreateComment)

		protected.GET("/friends/:username", friendController.GetFriends)
		protected.POST("/friends/:username", friendController.AddFriend)

		protected.GET("/profile/:username", profileController.GetProfile)
		protected.POST("/profile/:username", profileController.UpdateProfile)

		protected.GET("/uploads/:filename", uploadController.ServeUpload)

		protected.GET("/logout", authController.Logout)
	}
}
