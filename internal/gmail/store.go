package gmail

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ExportedMessage records a message already written to an export file, so
// repeated runs skip re-fetching it.
type ExportedMessage struct {
	ID         string `gorm:"primaryKey"`
	Label      string
	ExportedAt time.Time
}

// Store persists export state in a local sqlite database.
type Store struct {
	db *gorm.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if err := db.AutoMigrate(&ExportedMessage{}); err != nil {
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return &Store{db: db}, nil
}

// Seen reports whether the message ID was already exported.
func (s *Store) Seen(id string) (bool, error) {
	var n int64
	err := s.db.Model(&ExportedMessage{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkExported records a message as written.
func (s *Store) MarkExported(id, label string) error {
	return s.db.Create(&ExportedMessage{
		ID:         id,
		Label:      label,
		ExportedAt: time.Now(),
	}).Error
}
