package database

import (
	"time"

	"gorm.io/gorm"
)

// SnapshotRepository handles state snapshot database operations
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create adds a new snapshot record
func (r *SnapshotRepository) Create(s *StateSnapshot) error {
	return r.db.Create(s).Error
}

// GetRecent retrieves the most recent N snapshots
func (r *SnapshotRepository) GetRecent(limit int) ([]StateSnapshot, error) {
	var snapshots []StateSnapshot
	err := r.db.Order("received_at DESC").Limit(limit).Find(&snapshots).Error
	return snapshots, err
}

// GetRecentPaginated retrieves snapshots with pagination
func (r *SnapshotRepository) GetRecentPaginated(page, perPage int) ([]StateSnapshot, int64, error) {
	var snapshots []StateSnapshot
	var total int64

	if err := r.db.Model(&StateSnapshot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := r.db.Order("received_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&snapshots).Error

	return snapshots, total, err
}

// GetByBand retrieves snapshots for a specific band code
func (r *SnapshotRepository) GetByBand(bandCode uint8, limit int) ([]StateSnapshot, error) {
	var snapshots []StateSnapshot
	err := r.db.Where("band_code = ?", bandCode).
		Order("received_at DESC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}

// Count returns the total number of stored snapshots
func (r *SnapshotRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&StateSnapshot{}).Count(&count).Error
	return count, err
}

// Prune deletes snapshots received before the cutoff
func (r *SnapshotRepository) Prune(olderThan time.Time) (int64, error) {
	result := r.db.Where("received_at < ?", olderThan).Delete(&StateSnapshot{})
	return result.RowsAffected, result.Error
}

// StatusEventRepository handles status event database operations
type StatusEventRepository struct {
	db *gorm.DB
}

// NewStatusEventRepository creates a new status event repository
func NewStatusEventRepository(db *gorm.DB) *StatusEventRepository {
	return &StatusEventRepository{db: db}
}

// Create adds a new status event record
func (r *StatusEventRepository) Create(e *StatusEvent) error {
	return r.db.Create(e).Error
}

// GetRecent retrieves the most recent N status events
func (r *StatusEventRepository) GetRecent(limit int) ([]StatusEvent, error) {
	var events []StatusEvent
	err := r.db.Order("received_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// GetByLabel retrieves the most recent events for one field label
func (r *StatusEventRepository) GetByLabel(label string, limit int) ([]StatusEvent, error) {
	var events []StatusEvent
	err := r.db.Where("label = ?", label).
		Order("received_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// Count returns the total number of stored status events
func (r *StatusEventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&StatusEvent{}).Count(&count).Error
	return count, err
}

// Prune deletes status events received before the cutoff
func (r *StatusEventRepository) Prune(olderThan time.Time) (int64, error) {
	result := r.db.Where("received_at < ?", olderThan).Delete(&StatusEvent{})
	return result.RowsAffected, result.Error
}
