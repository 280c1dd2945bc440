package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"console-rental-backend/internal/model"
	"console-rental-backend/internal/rental"
	"console-rental-backend/internal/report"
)

// StartSession opens a timed rental on an available device. The new session
// row and the device flip to occupied commit together or not at all.
func (s *gormStore) StartSession(ctx context.Context, deviceID int64, customerName string, now time.Time) (*model.Session, error) {
	var created *model.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var device model.Device
		if err := tx.First(&device, deviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rental.ErrNotFound
			}
			return err
		}
		if device.Status == model.DeviceOccupied {
			return rental.ErrDeviceBusy
		}

		session := model.Session{
			DeviceID:           deviceID,
			CustomerName:       customerName,
			StartTime:          now,
			Status:             model.SessionRunning,
			Games:              []string{},
			AdditionalServices: []model.AdditionalService{},
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create session for device %d: %w", deviceID, err)
		}

		device.Status = model.DeviceOccupied
		device.CurrentSession = &model.CurrentSession{
			ID:        session.ID,
			StartTime: now,
			Status:    model.SessionRunning,
		}
		if customerName != "" {
			device.Customer = &customerName
		}
		if err := tx.Save(&device).Error; err != nil {
			return fmt.Errorf("failed to occupy device %d: %w", deviceID, err)
		}

		created = &session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EndSession closes the running session on an occupied device: the session
// gets its end time, unrounded duration and ceil-rounded cost, and the device
// returns to available with its total hours accumulated.
//
// If the device claims to be occupied but no running session row exists (data
// drift), the device is still released and ErrSessionDrift is returned so the
// caller can surface a warning instead of leaving the device stuck.
func (s *gormStore) EndSession(ctx context.Context, deviceID int64, now time.Time) (*model.Session, error) {
	var ended *model.Session
	var drifted bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var device model.Device
		if err := tx.First(&device, deviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rental.ErrNotFound
			}
			return err
		}
		if device.Status != model.DeviceOccupied || device.CurrentSession == nil {
			return rental.ErrNoActiveSession
		}

		elapsed := rental.Elapsed(device.CurrentSession.StartTime, now)
		cost := rental.Cost(elapsed, device.HourlyRate)

		device.Status = model.DeviceAvailable
		device.CurrentSession = nil
		device.TotalHours += elapsed
		device.Customer = nil

		var session model.Session
		err := tx.Where("device_id = ? AND status = ?", deviceID, model.SessionRunning).
			Order("start_time DESC").
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Drift: free the device anyway rather than leaving it stuck.
			drifted = true
			return tx.Save(&device).Error
		}
		if err != nil {
			return err
		}

		session.EndTime = &now
		session.Duration = &elapsed
		session.Cost = &cost
		session.Status = model.SessionEnded
		if err := tx.Save(&session).Error; err != nil {
			return fmt.Errorf("failed to close session %d: %w", session.ID, err)
		}
		if err := tx.Save(&device).Error; err != nil {
			return fmt.Errorf("failed to release device %d: %w", deviceID, err)
		}

		ended = &session
		return nil
	})
	if err != nil {
		return nil, err
	}
	if drifted {
		return nil, rental.ErrSessionDrift
	}
	return ended, nil
}

// AddMaintenance appends a maintenance record. When the device still exists
// the record is also dual-written into its denormalized history and
// lastMaintenance is bumped; a vanished device skips the side effect without
// failing the append.
func (s *gormStore) AddMaintenance(ctx context.Context, record *model.MaintenanceRecord) error {
	record.ID = 0
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		var device model.Device
		err := tx.First(&device, record.DeviceID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		device.MaintenanceHistory = append(device.MaintenanceHistory, *record)
		device.LastMaintenance = &record.Date
		return tx.Save(&device).Error
	})
}

// GenerateDailyReport builds the report for the given calendar day and
// appends it to the report history. Generating twice for the same day
// produces two entries; the history is an append-only log.
func (s *gormStore) GenerateDailyReport(ctx context.Context, date string, now time.Time) (*model.DailyReport, error) {
	var built *model.DailyReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessions []model.Session
		if err := tx.Order("id").Find(&sessions).Error; err != nil {
			return err
		}
		var maintenance []model.MaintenanceRecord
		if err := tx.Order("id").Find(&maintenance).Error; err != nil {
			return err
		}

		built = report.Build(date, sessions, maintenance)
		built.GeneratedAt = now
		return tx.Create(built).Error
	})
	if err != nil {
		return nil, err
	}
	return built, nil
}
