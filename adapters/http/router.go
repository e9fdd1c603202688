package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/devconnector/pkg/auth"
	"github.com/khoahotran/devconnector/pkg/logger"
)

type RouterConfig struct {
	ServiceName    string
	JWT            *auth.JWTService
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	GitHubHandler  *GitHubHandler
	Logger         logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(ErrorMiddleware(cfg.Logger))

	authMiddleware := AuthMiddleware(cfg.JWT, cfg.Logger)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/auth/login", cfg.AuthHandler.Login)

		profiles := api.Group("/profile")
		{
			profiles.GET("", cfg.ProfileHandler.ListProfiles)
			profiles.GET("/user/:user_id", cfg.ProfileHandler.GetProfileByOwner)
			profiles.GET("/github/:username", cfg.GitHubHandler.ListRepositories)

			own := profiles.Group("")
			own.Use(authMiddleware)
			{
				own.GET("/me", cfg.ProfileHandler.GetOwnProfile)
				own.POST("", cfg.ProfileHandler.UpsertProfile)
				own.DELETE("", cfg.ProfileHandler.DeleteAccount)
				own.PUT("/experience", cfg.ProfileHandler.AddExperience)
				own.DELETE("/experience/:exp_id", cfg.ProfileHandler.RemoveExperience)
				own.PUT("/education", cfg.ProfileHandler.AddEducation)
				own.DELETE("/education/:edu_id", cfg.ProfileHandler.RemoveEducation)
			}
		}
	}
	return router
}
