package database

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"itemcatalog/internal/models"
)

type Service interface {
	Health() map[string]string
	Gorm() *gorm.DB
	Close() error
}

type service struct {
	db *gorm.DB
}

func New() Service {
	dsn := os.Getenv("SQLITE_PATH")
	if dsn == "" {
		dsn = "catalog.db"
	}

	svc, err := Open(dsn)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", dsn).Msg("Failed to open SQLite database")
	}
	return svc
}

// Open connects to the given SQLite DSN and migrates the schema. Tests use
// it directly with ":memory:".
func Open(dsn string) (Service, error) {
	gormLogger := logger.New(
		&zerologWriter{},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Item{}); err != nil {
		return nil, err
	}

	return &service{db: db}, nil
}

func (s *service) Gorm() *gorm.DB {
	return s.db
}

func (s *service) Health() map[string]string {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"message": "Database is unavailable",
			"error":   err.Error(),
		}
	}
	return map[string]string{"message": "It's healthy"}
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// zerologWriter adapts gorm's logger to the global zerolog logger.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.Warn().Msgf(strings.TrimSpace(format), args...)
}
