package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/urbaneye/civic-issue-system/docs"
	"github.com/urbaneye/civic-issue-system/internal/api/handler"
	"github.com/urbaneye/civic-issue-system/internal/api/middleware"
	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/service"
	"github.com/urbaneye/civic-issue-system/internal/infrastructure/config"
	mongostore "github.com/urbaneye/civic-issue-system/internal/infrastructure/db/mongo"
	redisstore "github.com/urbaneye/civic-issue-system/internal/infrastructure/db/redis"
	"github.com/urbaneye/civic-issue-system/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, dispatcher *queue.Dispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("civic"))

	// --- Dependencies ---
	users := mongostore.NewUserRepository(db, cfg.Mongo.StoreTimeout)
	issues := mongostore.NewIssueRepository(db)
	comments := mongostore.NewCommentRepository(db)
	votes := mongostore.NewVoteRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(users, tokens, log)
	userService := service.NewUserService(users)
	issueService := service.NewIssueService(
		issues, comments, votes, users,
		redisstore.NewVoteDedup(rdb), dispatcher, log,
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	issueHandler := handler.NewIssueHandler(issueService)

	authn := middleware.Authenticate(tokens, log)
	optionalAuthn := middleware.OptionalAuthenticate(tokens)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- API routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)

	v1.GET("/user/profile", userHandler.Profile, authn)

	issueRoutes := v1.Group("/issues")
	issueRoutes.GET("", issueHandler.List, optionalAuthn)
	issueRoutes.POST("", issueHandler.Create, authn)
	issueRoutes.GET("/my", issueHandler.Mine, authn)
	issueRoutes.GET("/:id", issueHandler.Get)
	issueRoutes.PUT("/:id", issueHandler.Update, authn, middleware.RequireRole(domain.RoleEmployee))
	issueRoutes.POST("/:id/vote", issueHandler.Vote, authn)
	issueRoutes.GET("/:id/comments", issueHandler.ListComments)
	issueRoutes.POST("/:id/comments", issueHandler.AddComment, authn)

	return e
}
