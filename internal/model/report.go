package model

import "time"

// DeviceRanking is one entry of a report's top-devices list.
type DeviceRanking struct {
	DeviceID int64   `json:"deviceId"`
	Revenue  float64 `json:"revenue"`
	Hours    float64 `json:"hours"`
}

// GameRanking is one entry of a report's top-games list.
type GameRanking struct {
	Name      string `json:"name"`
	PlayCount int    `json:"playCount"`
}

// ExpenseBreakdown groups a day's expenses. Other is reserved and always zero.
type ExpenseBreakdown struct {
	Maintenance float64 `json:"maintenance"`
	Services    float64 `json:"services"`
	Other       float64 `json:"other"`
}

// DailyReport is a derived summary of one calendar day. Reports are appended
// to the history and never overwritten; generating twice for the same date
// yields two entries.
type DailyReport struct {
	ID                     int64            `gorm:"primaryKey" json:"-"`
	Date                   string           `gorm:"size:10;index;not null" json:"date"`
	TotalRevenue           float64          `json:"totalRevenue"`
	TotalSessions          int              `json:"totalSessions"`
	AverageSessionDuration float64          `json:"averageSessionDuration"`
	TopDevices             []DeviceRanking  `gorm:"serializer:json" json:"topDevices"`
	TopGames               []GameRanking    `gorm:"serializer:json" json:"topGames"`
	Expenses               ExpenseBreakdown `gorm:"serializer:json" json:"expenses"`
	GeneratedAt            time.Time        `json:"-"`
}
