package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"itemcatalog/internal/database"
	"itemcatalog/internal/repositories"
	"itemcatalog/internal/services"
	"itemcatalog/internal/session"
	"itemcatalog/internal/views"
)

type Server struct {
	port            int
	httpServer      *http.Server
	db              database.Service
	sessions        *session.Manager
	views           *views.Renderer
	userService     services.UserService
	categoryService services.CategoryService
	itemService     services.ItemService
	authService     services.AuthService
}

func NewServer() *Server {
	portStr := os.Getenv("PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Str("port", portStr).Msg("Invalid or missing PORT environment variable. Using default 8080.")
		port = 8080
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		log.Fatal().Msg("SESSION_KEY environment variable not set")
	}

	db := database.New()
	if os.Getenv("SEED_DB") == "true" {
		if err := database.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	s := &Server{
		port:            port,
		db:              db,
		sessions:        session.NewManager([]byte(sessionKey)),
		views:           views.NewRenderer(),
		userService:     services.NewUserService(userRepo),
		categoryService: services.NewCategoryService(categoryRepo),
		itemService:     services.NewItemService(itemRepo, categoryRepo),
		authService:     services.NewAuthService(services.NewGoogleProvider(), userRepo),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
