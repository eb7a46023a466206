package postgres

import (
	"fmt"
	"time"

	"bookstore/internal/adapters/out/postgres/bookrepo"
	"bookstore/internal/adapters/out/postgres/conversationrepo"
	"bookstore/internal/adapters/out/postgres/orderrepo"
	"bookstore/internal/adapters/out/postgres/sessionrepo"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to PostgreSQL and configures the connection pool. SQL is
// logged through logger at warn level, slow statements included.
func Open(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			zap.NewStdLog(logger.Named("gorm")),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				ParameterizedQueries:      true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookrepo.BookDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&sessionrepo.SessionDTO{},
		&conversationrepo.TurnDTO{},
	)
}
