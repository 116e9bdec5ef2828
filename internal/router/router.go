package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-tracker-api/internal/client"
	"goal-tracker-api/internal/handler"
	"goal-tracker-api/internal/metrics"
	"goal-tracker-api/internal/middleware"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	S3Client       client.S3ClientInterface
	UserClient     client.UserClient
	// UseRemoteAuth switches token validation to the user service,
	// which also rejects blacklisted tokens.
	UseRemoteAuth bool
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "goal-tracker-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "goal-tracker-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "goal-tracker-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "goal-tracker-api"})
	})

	// Initialize repositories
	txRunner := repository.NewTxRunner(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	participantRepo := repository.NewParticipantRepository(cfg.DB)
	categoryRepo := repository.NewCategoryRepository(cfg.DB)
	goalRepo := repository.NewGoalRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	// Initialize services
	roles := service.NewRoleResolver(participantRepo, cfg.Redis, cfg.Logger)
	lifecycle := service.NewLifecycleService(txRunner, boardRepo, categoryRepo, goalRepo, cfg.Logger)
	boardService := service.NewBoardService(txRunner, boardRepo, participantRepo, cfg.UserClient, roles, lifecycle, cfg.Metrics, cfg.Logger)
	categoryService := service.NewCategoryService(boardRepo, categoryRepo, roles, lifecycle, cfg.Logger)
	goalService := service.NewGoalService(txRunner, categoryRepo, goalRepo, attachmentRepo, roles, lifecycle, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(goalRepo, commentRepo, roles, cfg.Logger)
	attachmentService := service.NewAttachmentService(goalRepo, attachmentRepo, cfg.S3Client, roles, cfg.Logger)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	goalHandler := handler.NewGoalHandler(goalService)
	commentHandler := handler.NewCommentHandler(commentService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)

	// Auth middleware: remote validation when the user service is wired,
	// local JWT validation otherwise
	var authMiddleware gin.HandlerFunc
	if cfg.UseRemoteAuth && cfg.UserClient != nil {
		authMiddleware = middleware.AuthWithValidator(client.TokenValidatorAdapter{Users: cfg.UserClient})
	} else {
		authMiddleware = middleware.Auth(cfg.JWTSecret)
	}

	api := r.Group(cfg.BasePath)
	api.Use(authMiddleware)

	boards := api.Group("/boards")
	{
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("", boardHandler.ListBoards)
		boards.GET("/:boardId", boardHandler.GetBoard)
		boards.PUT("/:boardId", boardHandler.UpdateBoard)
		boards.DELETE("/:boardId", boardHandler.DeleteBoard)
	}

	categories := api.Group("/categories")
	{
		categories.POST("", categoryHandler.CreateCategory)
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:categoryId", categoryHandler.GetCategory)
		categories.PUT("/:categoryId", categoryHandler.UpdateCategory)
		categories.DELETE("/:categoryId", categoryHandler.DeleteCategory)
	}

	goals := api.Group("/goals")
	{
		goals.POST("", goalHandler.CreateGoal)
		goals.GET("", goalHandler.ListGoals)
		goals.GET("/:goalId", goalHandler.GetGoal)
		goals.PUT("/:goalId", goalHandler.UpdateGoal)
		goals.DELETE("/:goalId", goalHandler.DeleteGoal)
	}

	comments := api.Group("/comments")
	{
		comments.POST("", commentHandler.CreateComment)
		comments.GET("", commentHandler.ListComments)
		comments.GET("/:commentId", commentHandler.GetComment)
		comments.PUT("/:commentId", commentHandler.UpdateComment)
		comments.DELETE("/:commentId", commentHandler.DeleteComment)
	}

	attachments := api.Group("/attachments")
	{
		attachments.POST("/presigned-url", attachmentHandler.GeneratePresignedURL)
		attachments.GET("/goal/:goalId", attachmentHandler.ListByGoal)
		attachments.DELETE("/:attachmentId", attachmentHandler.DeleteAttachment)
	}

	return r
}
