package main

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/db"
	"github.com/ideaforge/backend/internal/handler"
	"github.com/ideaforge/backend/internal/service"
)

// @title IdeaForge API
// @version 0.1.0
// @description API for the IdeaForge research collaboration platform
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// A missing signing secret is a fatal startup condition, never a
	// runtime one.
	authService, err := service.NewAuthService(repo, cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("auth configuration invalid")
	}
	usersService := service.NewUsersService(repo)
	projectsService := service.NewProjectsService(repo)
	collaborationsService := service.NewCollaborationsService(repo)

	authHandler := handler.NewAuthHandler(authService)
	usersHandler := handler.NewUsersHandler(usersService)
	projectsHandler := handler.NewProjectsHandler(projectsService)
	collaborationsHandler := handler.NewCollaborationsHandler(collaborationsService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.CORSOrigins, ",")))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	api := router.Group("/api/v1")
	api.GET("/openapi.json", handler.OpenAPIDoc)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", handler.AuthMiddleware(authService), authHandler.Me)
	}

	users := api.Group("/users", handler.AuthMiddleware(authService))
	{
		users.GET("", usersHandler.List)
		users.PUT("/me", usersHandler.UpdateMe)
		users.DELETE("/me", usersHandler.DeactivateMe)
		users.GET("/:id", usersHandler.Get)
	}

	projects := api.Group("/projects", handler.AuthMiddleware(authService))
	{
		projects.POST("", projectsHandler.Create)
		projects.GET("", projectsHandler.List)
		projects.GET("/my-projects", projectsHandler.MyProjects)
		projects.GET("/:id", projectsHandler.Get)
		projects.PUT("/:id", projectsHandler.Update)
		projects.DELETE("/:id", projectsHandler.Delete)
		projects.POST("/:id/collaborators/:user_id", projectsHandler.AddCollaborator)
		projects.DELETE("/:id/collaborators/:user_id", projectsHandler.RemoveCollaborator)
	}

	collaborations := api.Group("/collaborations", handler.AuthMiddleware(authService))
	{
		collaborations.POST("", collaborationsHandler.Create)
		collaborations.GET("/sent", collaborationsHandler.Sent)
		collaborations.GET("/received", collaborationsHandler.Received)
		collaborations.GET("/:id", collaborationsHandler.Get)
		collaborations.PUT("/:id", collaborationsHandler.Respond)
		collaborations.DELETE("/:id", collaborationsHandler.Withdraw)
	}

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
