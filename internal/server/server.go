package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardflow/internal/config"
	"cardflow/internal/handler"
	"cardflow/internal/middleware"
	"cardflow/internal/model"
	"cardflow/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(&model.User{}, &model.Workspace{}, &model.Card{}); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo)
	cardHandler := handler.NewCardHandler(cardRepo, workspaceRepo)

	// Public routes
	r.POST("/auth/register", userHandler.Register)
	r.POST("/auth/login", userHandler.Login)
	r.GET("/health", healthCheck(cfg))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))
	{
		// Profile routes
		authorized.GET("/auth/profile", userHandler.Profile)
		authorized.PUT("/auth/settings", userHandler.UpdateSettings)

		// Workspace routes
		authorized.GET("/workspaces", workspaceHandler.List)
		authorized.GET("/workspaces/:id", workspaceHandler.Get)
		authorized.POST("/workspaces", workspaceHandler.Create)
		authorized.PUT("/workspaces/:id", workspaceHandler.Update)
		authorized.DELETE("/workspaces/:id", workspaceHandler.Delete)

		// Card routes
		authorized.GET("/cards/workspace/:workspaceId", cardHandler.ListByWorkspace)
		authorized.GET("/cards/:id", cardHandler.Get)
		authorized.POST("/cards", cardHandler.Create)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.PATCH("/cards/:id/position", cardHandler.UpdatePosition)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func healthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "CardFlow API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"env":       cfg.Env,
			"database":  "PostgreSQL",
		})
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
