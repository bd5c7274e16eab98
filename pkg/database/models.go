package database

import (
	"time"

	"gorm.io/gorm"
)

// StateSnapshot is one decoded band/frequency/signal packet as stored.
type StateSnapshot struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	BandCode       uint8     `gorm:"index;not null" json:"band_code"`
	BandName       string    `gorm:"size:16;not null" json:"band_name"`
	FrequencyValue float64   `gorm:"not null" json:"frequency_value"`
	FrequencyHex   string    `gorm:"size:8" json:"frequency_hex"`
	UnitIsMHz      bool      `gorm:"not null" json:"unit_is_mhz"`
	SignalStrength int       `gorm:"not null" json:"signal_strength"`
	SignalBars     int       `gorm:"not null" json:"signal_bars"`
	RawHex         string    `gorm:"size:64" json:"raw_hex"`
	ReceivedAt     time.Time `gorm:"index;not null" json:"received_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for StateSnapshot
func (StateSnapshot) TableName() string {
	return "state_snapshots"
}

// BeforeCreate hook to ensure ReceivedAt is set
func (s *StateSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ReceivedAt.IsZero() {
		s.ReceivedAt = time.Now()
	}
	return nil
}

// StatusEvent is one decoded single-field status update as stored.
type StatusEvent struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	TypeCode   uint8     `gorm:"index;not null" json:"type_code"`
	Label      string    `gorm:"index;size:32;not null" json:"label"`
	Value      string    `gorm:"size:64" json:"value"`
	RawHex     string    `gorm:"size:128" json:"raw_hex"`
	ReceivedAt time.Time `gorm:"index;not null" json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for StatusEvent
func (StatusEvent) TableName() string {
	return "status_events"
}

// BeforeCreate hook to ensure ReceivedAt is set
func (e *StatusEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now()
	}
	return nil
}
