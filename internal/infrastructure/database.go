package infrastructure

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/babo072/my-shopping-mall/internal/config"
	"github.com/babo072/my-shopping-mall/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase establishes a connection to PostgreSQL using GORM.
func ConnectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateAllSchemas performs every schema migration in dependency order.
func MigrateAllSchemas(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := db.AutoMigrate(&model.Profile{}); err != nil {
		return fmt.Errorf("failed to migrate profiles table: %w", err)
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	if err := db.AutoMigrate(&model.ProductImage{}); err != nil {
		return fmt.Errorf("failed to migrate product_images table: %w", err)
	}
	if err := db.AutoMigrate(&model.Order{}); err != nil {
		return fmt.Errorf("failed to migrate orders table: %w", err)
	}
	if err := db.AutoMigrate(&model.OrderItem{}); err != nil {
		return fmt.Errorf("failed to migrate order_items table: %w", err)
	}
	return createAdditionalIndexes(db)
}

// createAdditionalIndexes creates composite indexes the tag-level definitions
// do not cover.
func createAdditionalIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_user_status
		ON orders(user_id, status)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_created_at
		ON orders(created_at DESC)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_profiles_role
		ON profiles(role)
	`).Error; err != nil {
		return err
	}

	return nil
}
