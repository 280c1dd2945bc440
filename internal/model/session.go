package model

import "time"

// Session status labels.
const (
	SessionRunning = "جارية"
	SessionEnded   = "منتهية"
)

// Payment method labels.
const (
	PaymentCash    = "نقدي"
	PaymentCard    = "بطاقة"
	PaymentEWallet = "محفظة إلكترونية"
	PaymentCredit  = "رصيد"
)

// AdditionalService is a billable extra attached to a session.
type AdditionalService struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
}

// Session is one timed occupancy of a device. EndTime, Duration and Cost are
// populated exactly once, when the session ends.
type Session struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	DeviceID     int64      `gorm:"index;not null" json:"deviceId"`
	CustomerName string     `gorm:"size:256" json:"customerName"`
	StartTime    time.Time  `gorm:"not null;index" json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Duration     *float64   `json:"duration,omitempty"` // fractional hours, unrounded
	Cost         *float64   `json:"cost,omitempty"`
	Status       string     `gorm:"size:32;not null;index" json:"status"`

	Games              []string            `gorm:"serializer:json" json:"games"`
	AdditionalServices []AdditionalService `gorm:"serializer:json" json:"additionalServices"`
	PaymentMethod      string              `gorm:"size:64" json:"paymentMethod"`
	Discount           float64             `json:"discount"`
}
