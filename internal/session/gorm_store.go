package session

import (
	"context" // Query context
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"time"    // Expiry filtering

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clause

	"storefront/internal/domain"
)

// GormStore keeps records in the sessions table
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore creates a database backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// Load fetches a live record by hashed id
func (s *GormStore) Load(ctx context.Context, id string) (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	return &rec, nil
}

// Save inserts or overwrites a record
func (s *GormStore) Save(ctx context.Context, rec *domain.SessionRecord) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Delete removes a record
func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.SessionRecord{}).Error; err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// PurgeExpired drops every record past its expiry and returns how many went
func (s *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&domain.SessionRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("session: purge: %w", res.Error)
	}
	return res.RowsAffected, nil
}
