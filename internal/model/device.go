package model

import "time"

// Device status labels. These are the literal values shown to staff and
// persisted as-is; they must round-trip unchanged.
const (
	DeviceAvailable = "متاح"
	DeviceOccupied  = "مشغول"
)

// CurrentSession marks an in-progress rental directly on the device. It is
// nil exactly when the device is available.
type CurrentSession struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
}

// Device represents a rentable console unit.
type Device struct {
	ID         int64   `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:256;not null" json:"name"`
	HourlyRate float64 `gorm:"not null" json:"hourlyRate"`
	Status     string  `gorm:"size:32;not null" json:"status"`

	CurrentSession *CurrentSession `gorm:"serializer:json" json:"currentSession"`

	TotalHours float64 `json:"totalHours"`
	Customer   *string `gorm:"size:256" json:"customer"`

	// MaintenanceHistory is a denormalized copy of this device's maintenance
	// records; the canonical rows live in the maintenance table.
	MaintenanceHistory []MaintenanceRecord `gorm:"serializer:json" json:"maintenanceHistory"`
	LastMaintenance    *string             `gorm:"size:10" json:"lastMaintenance"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
