package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotKey 全量课程快照的固定键，沿用前端 localStorage 的键名
const SnapshotKey = "souschef_courses"

// StoreSnapshot 单行承载整个课程库的 JSON 快照
type StoreSnapshot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (StoreSnapshot) TableName() string {
	return "store_snapshots"
}

type SnapshotRepository struct {
	DB *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{DB: db}
}

// Load 读取快照。不存在时返回 ok=false 而不是错误，由上层落回种子数据。
func (r *SnapshotRepository) Load() (string, bool, error) {
	var snap StoreSnapshot
	err := r.DB.First(&snap, "key = ?", SnapshotKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return snap.Payload, true, nil
}

// Save 覆盖写入全量快照
func (r *SnapshotRepository) Save(payload string) error {
	snap := StoreSnapshot{
		Key:       SnapshotKey,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
}
