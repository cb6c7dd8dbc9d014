package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/feedhub/internal/config"
	"github.com/sujalbistaa/feedhub/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, cfg config.Config, env *Env) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	limiter := NewIPRateLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			limiter.Sweep()
		}
	}()

	api := router.Group("/api")
	{
		api.GET("/threads", env.GetThreads)
		api.POST("/threads", RateLimitMiddleware(limiter), env.CreateThread)
		api.GET("/threads/:id/replies", env.GetReplies)
		api.POST("/threads/:id/replies", RateLimitMiddleware(limiter), env.CreateReply)
		api.POST("/threads/:id/vote", env.VoteOnThread)
		api.GET("/threads/:id/votes", env.GetVotes)
		api.GET("/warnings/:anonymous_id", env.GetWarningBadge)
		api.GET("/news", env.GetNews)
		api.POST("/uploads", RateLimitMiddleware(limiter), env.UploadImage)
	}

	admin := router.Group("/api/admin", AdminAuthMiddleware(cfg.AdminToken))
	{
		admin.POST("/login", env.AdminLogin)
		admin.GET("/threads", env.AdminListThreads)
		admin.POST("/threads/:id/archive", env.AdminArchiveThread)
		admin.DELETE("/threads/:id", env.AdminDeleteThread)
		admin.POST("/threads/:id/replies", env.AdminReply)
		admin.GET("/warnings", env.AdminListWarnings)
		admin.POST("/warnings", env.AdminWarn)
		admin.POST("/news", env.AdminCreateNews)
		admin.DELETE("/news/:id", env.AdminDeleteNews)
	}

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(env.Hub, c.Writer, c.Request)
	})

	// Uploaded images are served straight off disk. This MUST come after
	// the API routes.
	router.Static("/uploads", cfg.UploadDir)
}
