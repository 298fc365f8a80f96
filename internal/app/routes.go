package app

import (
	"context"
	"net/http"
	"time"

	"Pulse/internal/auth"
	"Pulse/internal/config"
	"Pulse/internal/handlers"
	"Pulse/internal/repo"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine. Dependencies are built here
// once and passed down by reference; there is no ambient singleton.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/health/db", dbHealthHandler(db))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	userRepo := repo.NewPGUserRepo(db)
	postRepo := repo.NewPGPostRepo(db)
	followRepo := repo.NewPGFollowRepo(db)

	userSvc := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	authSvc := service.NewAuthService(userSvc, tokens)
	postSvc := service.NewPostService(postRepo)
	followSvc := service.NewFollowService(followRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	postHandler := handlers.NewPostHandler(postSvc)
	followHandler := handlers.NewFollowHandler(followSvc)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", requireAuth, authHandler.Profile)
	authGroup.POST("/refresh-token", authHandler.Refresh)

	users := api.Group("/users")
	users.GET("", optionalAuth, userHandler.Search)
	users.GET("/me", requireAuth, userHandler.Me)
	users.GET("/username/:username", userHandler.GetByUsername)
	users.GET("/:id", optionalAuth, userHandler.GetByID)
	users.PUT("/:id", requireAuth, userHandler.Update)
	users.DELETE("/:id", requireAuth, userHandler.Delete)
	users.POST("/:id/follow", requireAuth, followHandler.Follow)
	users.DELETE("/:id/unfollow", requireAuth, followHandler.Unfollow)
	users.GET("/:id/followers", followHandler.Followers)
	users.GET("/:id/following", followHandler.Following)
	users.GET("/:id/status", requireAuth, followHandler.Status)

	posts := api.Group("/posts")
	posts.POST("", requireAuth, postHandler.Create)
	posts.GET("/feed", requireAuth, postHandler.Feed)
	posts.GET("", optionalAuth, postHandler.GetAll)
	posts.GET("/user/:id", postHandler.GetUserPosts)
	posts.GET("/:id", optionalAuth, postHandler.GetByID)
	posts.PUT("/:id", requireAuth, postHandler.Update)
	posts.DELETE("/:id", requireAuth, postHandler.Delete)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Pulse API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

// dbHealthHandler reports storage connectivity with a bounded ping.
func dbHealthHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "database connection failed"})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
