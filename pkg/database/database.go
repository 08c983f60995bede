package database

import (
	"log"
	"os"
	"path/filepath"
	"souschef_backend/internal/config"
	"souschef_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 打开本地 sqlite 数据库，只承载课程快照表
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dir := filepath.Dir(cfg.Path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := db.AutoMigrate(&repository.StoreSnapshot{}); err != nil {
		return nil, err
	}

	return db, nil
}
