package persist

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store_snapshotsの1行。スロット名がそのまま主キー。
type StoreSnapshot struct {
	SlotKey   string    `gorm:"type:varchar(100);primaryKey"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

// GORM実装。スロットをstore_snapshotsテーブルに1行ずつ持つ。
type GormSnapshotStore struct {
	db *gorm.DB
}

// DI
func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: db}
}

func (s *GormSnapshotStore) Load(ctx context.Context, slot string) ([]model.CartLine, error) {
	var row StoreSnapshot
	err := s.db.WithContext(ctx).
		Where("slot_key = ?", slot).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeLines(row.Payload), nil
}

// 同一スロットは上書き（upsert）。
func (s *GormSnapshotStore) Save(ctx context.Context, slot string, lines []model.CartLine) error {
	b, err := encodeLines(lines)
	if err != nil {
		return err
	}

	row := StoreSnapshot{SlotKey: slot, Payload: b}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *GormSnapshotStore) Erase(ctx context.Context, slot string) error {
	return s.db.WithContext(ctx).
		Where("slot_key = ?", slot).
		Delete(&StoreSnapshot{}).Error
}
