package db

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cookshelf/cookshelf-back/internal/config"
)

type (
	BookRecord struct {
		ID         string `gorm:"primarykey"`
		Title      string `gorm:"not null"`
		Author     string `gorm:"not null"`
		Pseudonym  string
		Editor     string
		Category   string
		CoverImage string
		Year       *int
		CreatedAt  time.Time
	}

	RecipeRecord struct {
		ID          string `gorm:"primarykey"`
		Name        string `gorm:"not null"`
		BookID      string `gorm:"index"`
		Notes       string
		IsFavorite  bool
		RecipeImage string
		CreatedAt   time.Time
	}

	// RecipeTagRecord keeps a recipe's tags with their display order.
	RecipeTagRecord struct {
		RecipeID string `gorm:"primarykey"`
		Tag      string `gorm:"primarykey"`
		Position int
	}

	TagRecord struct {
		Name string `gorm:"primarykey"`
	}

	CollectionRecord struct {
		ID        string `gorm:"primarykey"`
		Name      string `gorm:"not null"`
		CreatedAt time.Time
	}

	CollectionTagRecord struct {
		CollectionID string `gorm:"primarykey"`
		Tag          string `gorm:"primarykey"`
		Position     int
	}
)

func (BookRecord) TableName() string          { return "books" }
func (RecipeRecord) TableName() string        { return "recipes" }
func (RecipeTagRecord) TableName() string     { return "recipe_tags" }
func (TagRecord) TableName() string           { return "tags" }
func (CollectionRecord) TableName() string    { return "collections" }
func (CollectionTagRecord) TableName() string { return "collection_tags" }

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.AutoMigrate(&BookRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate book")
	}
	if err := db.AutoMigrate(&RecipeRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate recipe")
	}
	if err := db.AutoMigrate(&RecipeTagRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate recipe tag")
	}
	if err := db.AutoMigrate(&TagRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate tag")
	}
	if err := db.AutoMigrate(&CollectionRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate collection")
	}
	if err := db.AutoMigrate(&CollectionTagRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate collection tag")
	}

	return db, nil
}
