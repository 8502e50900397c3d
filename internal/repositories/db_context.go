package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.Profile{})
	if err != nil {
		return fmt.Errorf("failed to migrate Profile entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Interaction{})
	if err != nil {
		return fmt.Errorf("failed to migrate Interaction entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.SavedView{})
	if err != nil {
		return fmt.Errorf("failed to migrate SavedView entity: %w", err)
	}

	// one interaction row per (user, tender) pair, enforced at the store level
	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_tender ON interactions (user_id, tender_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create interaction index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
