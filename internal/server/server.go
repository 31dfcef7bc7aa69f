package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retroboard/internal/broadcast"
	"retroboard/internal/config"
	"retroboard/internal/handler"
	"retroboard/internal/store"
	"retroboard/internal/suggest"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	Engine *gin.Engine
	Store  *store.Store
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup Gin
	r := gin.Default()

	// The broadcaster is the store's publisher: every successful
	// mutation fans its snapshot out to that board's subscribers
	broadcaster := broadcast.New()
	boardStore := store.New(broadcaster)

	var generator suggest.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = suggest.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		log.Println("✅ Suggestion generator configured")
	} else {
		log.Println("⚠️  OPENAI_API_KEY not set, suggestions disabled")
	}

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardStore)
	cardHandler := handler.NewCardHandler(boardStore)
	streamHandler := handler.NewStreamHandler(boardStore, broadcaster)
	suggestHandler := handler.NewSuggestHandler(boardStore, generator)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Board routes
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards", boardHandler.GetAll)
	r.GET("/boards/:id", boardHandler.GetByID)
	r.DELETE("/boards/:id", boardHandler.Delete)

	// Change stream
	r.GET("/boards/:id/stream", streamHandler.Stream)

	// Card routes
	r.POST("/boards/:id/cards", cardHandler.Add)
	r.PUT("/boards/:id/cards/:cardId", cardHandler.Update)
	r.DELETE("/boards/:id/cards/:cardId", cardHandler.Delete)
	r.POST("/boards/:id/cards/:cardId/upvote", cardHandler.Upvote)
	r.POST("/boards/:id/cards/:cardId/move", cardHandler.Move)

	// Suggestions
	r.POST("/boards/:id/columns/:columnId/suggest", suggestHandler.Suggest)

	return &Server{
		Engine: r,
		Store:  boardStore,
		Config: cfg,
	}, nil
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
