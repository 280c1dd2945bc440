package model

// MaintenanceRecord is an append-only service log entry for a device. Dates
// are stored as YYYY-MM-DD strings, matching how reports filter them.
type MaintenanceRecord struct {
	ID                  int64   `gorm:"primaryKey" json:"id"`
	DeviceID            int64   `gorm:"index;not null" json:"deviceId"`
	Date                string  `gorm:"size:10;not null" json:"date"`
	Description         string  `json:"description"`
	Cost                float64 `json:"cost"`
	Technician          string  `gorm:"size:256" json:"technician"`
	NextMaintenanceDate string  `gorm:"size:10" json:"nextMaintenanceDate"`
}
