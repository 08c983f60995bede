package service

import (
	"souschef_backend/internal/config"
	"souschef_backend/internal/repository"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *repository.SnapshotRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// :memory: 每个连接各是一个库，必须收敛到单连接
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&repository.StoreSnapshot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewSnapshotRepository(db)
}

func testConfig() *config.Config {
	return &config.Config{
		Gate: config.GateConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
	}
}
