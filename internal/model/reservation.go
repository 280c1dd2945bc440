package model

// Reservation status labels.
const (
	ReservationConfirmed = "مؤكد"
	ReservationCancelled = "ملغي"
	ReservationPending   = "منتظر"
)

// Reservation is a booking of a device for a future time slot.
type Reservation struct {
	ID         int64   `gorm:"primaryKey" json:"id"`
	DeviceID   int64   `gorm:"index;not null" json:"deviceId"`
	CustomerID int64   `gorm:"index;not null" json:"customerId"`
	Date       string  `gorm:"size:10;not null" json:"date"`
	StartTime  string  `gorm:"size:8" json:"startTime"`
	Duration   float64 `json:"duration"` // hours
	Status     string  `gorm:"size:32;not null" json:"status"`
	Deposit    float64 `json:"deposit"`
}
