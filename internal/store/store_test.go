package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"console-rental-backend/internal/db"
	"console-rental-backend/internal/model"
	"console-rental-backend/internal/rental"
)

// newTestStore opens a per-test in-memory sqlite database.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))
	return NewGormStore(testDB), testDB
}

func addTestDevice(t *testing.T, s Store, name string, rate float64) *model.Device {
	device := &model.Device{Name: name, HourlyRate: rate}
	require.NoError(t, s.AddDevice(context.Background(), device))
	return device
}

func TestAddDeviceForcesAvailable(t *testing.T) {
	s, _ := newTestStore(t)

	device := &model.Device{
		Name:       "بلايستيشن 5",
		HourlyRate: 30,
		Status:     model.DeviceOccupied, // caller input is ignored
		CurrentSession: &model.CurrentSession{
			StartTime: time.Now(),
			Status:    model.SessionRunning,
		},
	}
	require.NoError(t, s.AddDevice(context.Background(), device))

	assert.Equal(t, model.DeviceAvailable, device.Status)
	assert.Nil(t, device.CurrentSession)
	assert.NotZero(t, device.ID)
}

func TestSessionLifecycle(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)
	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	session, err := s.StartSession(ctx, device.ID, "أحمد", start)
	require.NoError(t, err)
	assert.Equal(t, model.SessionRunning, session.Status)
	assert.Equal(t, device.ID, session.DeviceID)
	assert.Nil(t, session.EndTime)
	assert.Nil(t, session.Cost)

	// The device flipped to occupied with the session embedded.
	var occupied model.Device
	require.NoError(t, testDB.First(&occupied, device.ID).Error)
	assert.Equal(t, model.DeviceOccupied, occupied.Status)
	require.NotNil(t, occupied.CurrentSession)
	assert.Equal(t, session.ID, occupied.CurrentSession.ID)
	require.NotNil(t, occupied.Customer)
	assert.Equal(t, "أحمد", *occupied.Customer)

	end := start.Add(90 * time.Minute)
	ended, err := s.EndSession(ctx, device.ID, end)
	require.NoError(t, err)
	require.NotNil(t, ended.EndTime)
	assert.True(t, ended.EndTime.After(ended.StartTime))
	require.NotNil(t, ended.Duration)
	assert.InDelta(t, 1.5, *ended.Duration, 1e-9)
	require.NotNil(t, ended.Cost)
	assert.Equal(t, 45.0, *ended.Cost) // ceil(1.5 * 30)
	assert.Equal(t, model.SessionEnded, ended.Status)

	var released model.Device
	require.NoError(t, testDB.First(&released, device.ID).Error)
	assert.Equal(t, model.DeviceAvailable, released.Status)
	assert.Nil(t, released.CurrentSession)
	assert.Nil(t, released.Customer)
	assert.InDelta(t, 1.5, released.TotalHours, 1e-9)
}

func TestStartSessionConflictLeavesStateUnchanged(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "إكس بوكس", 25)
	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	_, err := s.StartSession(ctx, device.ID, "", start)
	require.NoError(t, err)

	_, err = s.StartSession(ctx, device.ID, "", start.Add(time.Minute))
	assert.ErrorIs(t, err, rental.ErrDeviceBusy)

	var sessionCount int64
	testDB.Model(&model.Session{}).Count(&sessionCount)
	assert.Equal(t, int64(1), sessionCount, "conflicting start must not create a session")

	var after model.Device
	require.NoError(t, testDB.First(&after, device.ID).Error)
	assert.Equal(t, model.DeviceOccupied, after.Status)
	require.NotNil(t, after.CurrentSession)
	assert.Equal(t, start.Unix(), after.CurrentSession.StartTime.Unix(), "original session untouched")
}

func TestStartSessionDeviceNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.StartSession(context.Background(), 999, "", time.Now())
	assert.ErrorIs(t, err, rental.ErrNotFound)
}

func TestEndSessionOnAvailableDevice(t *testing.T) {
	s, _ := newTestStore(t)
	device := addTestDevice(t, s, "بلايستيشن 4", 20)

	_, err := s.EndSession(context.Background(), device.ID, time.Now())
	assert.ErrorIs(t, err, rental.ErrNoActiveSession)
}

func TestEndSessionDriftStillReleasesDevice(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)
	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

	session, err := s.StartSession(ctx, device.ID, "", start)
	require.NoError(t, err)

	// Simulate drift: the session row vanishes while the device still
	// claims to be occupied.
	require.NoError(t, testDB.Delete(&model.Session{}, session.ID).Error)

	_, err = s.EndSession(ctx, device.ID, start.Add(time.Hour))
	assert.ErrorIs(t, err, rental.ErrSessionDrift)

	var after model.Device
	require.NoError(t, testDB.First(&after, device.ID).Error)
	assert.Equal(t, model.DeviceAvailable, after.Status, "drift must not leave the device stuck")
	assert.Nil(t, after.CurrentSession)
}

func TestAddMaintenanceDualWrite(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)

	record := &model.MaintenanceRecord{
		DeviceID:    device.ID,
		Date:        "2024-01-15",
		Description: "تغيير يد التحكم",
		Cost:        150,
		Technician:  "كريم",
	}
	require.NoError(t, s.AddMaintenance(ctx, record))
	assert.NotZero(t, record.ID)

	var after model.Device
	require.NoError(t, testDB.First(&after, device.ID).Error)
	require.Len(t, after.MaintenanceHistory, 1)
	assert.Equal(t, record.ID, after.MaintenanceHistory[0].ID)
	require.NotNil(t, after.LastMaintenance)
	assert.Equal(t, "2024-01-15", *after.LastMaintenance)
}

func TestAddMaintenanceMissingDeviceStillPersists(t *testing.T) {
	s, testDB := newTestStore(t)

	record := &model.MaintenanceRecord{DeviceID: 424242, Date: "2024-01-15", Cost: 80}
	require.NoError(t, s.AddMaintenance(context.Background(), record))

	var count int64
	testDB.Model(&model.MaintenanceRecord{}).Count(&count)
	assert.Equal(t, int64(1), count, "the record is kept even without its device")
}

func TestAdjustCustomerBalance(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	customer := &model.Customer{Name: "سارة", Balance: 100}
	require.NoError(t, s.AddCustomer(ctx, customer))

	require.NoError(t, s.AdjustCustomerBalance(ctx, customer.ID, 50))
	require.NoError(t, s.AdjustCustomerBalance(ctx, customer.ID, -30))

	var after model.Customer
	require.NoError(t, testDB.First(&after, customer.ID).Error)
	assert.InDelta(t, 120.0, after.Balance, 1e-9)
}

func TestAdjustCustomerBalanceUnknownCustomerIsNoOp(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	customer := &model.Customer{Name: "سارة", Balance: 100}
	require.NoError(t, s.AddCustomer(ctx, customer))

	require.NoError(t, s.AdjustCustomerBalance(ctx, 999999, 500), "unknown customer must not error")

	var customers []model.Customer
	require.NoError(t, testDB.Find(&customers).Error)
	require.Len(t, customers, 1)
	assert.InDelta(t, 100.0, customers[0].Balance, 1e-9, "existing balances untouched")
}

func TestGenerateDailyReportIsAppendOnly(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)
	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	duration, cost := 1.0, 30.0
	require.NoError(t, testDB.Create(&model.Session{
		DeviceID:  device.ID,
		StartTime: start,
		EndTime:   &end,
		Duration:  &duration,
		Cost:      &cost,
		Status:    model.SessionEnded,
		Games:     []string{"FIFA"},
	}).Error)

	first, err := s.GenerateDailyReport(ctx, "2024-01-15", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalSessions)
	assert.Equal(t, 30.0, first.TotalRevenue)

	_, err = s.GenerateDailyReport(ctx, "2024-01-15", time.Now().UTC())
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.DailyReport{}).Where("date = ?", "2024-01-15").Count(&count)
	assert.Equal(t, int64(2), count, "same-date reports append, never upsert")
}

func TestDeleteDeviceOrphansSessions(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)
	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	_, err := s.StartSession(ctx, device.ID, "", start)
	require.NoError(t, err)
	_, err = s.EndSession(ctx, device.ID, start.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.DeleteDevice(ctx, device.ID))

	var sessions []model.Session
	require.NoError(t, testDB.Find(&sessions).Error)
	require.Len(t, sessions, 1, "sessions survive their device")
	assert.Equal(t, device.ID, sessions[0].DeviceID, "with a dangling device reference")

	assert.ErrorIs(t, s.DeleteDevice(ctx, device.ID), rental.ErrNotFound)
}

func TestUpdateDeviceNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.UpdateDevice(context.Background(), &model.Device{ID: 999, Name: "x", Status: model.DeviceAvailable})
	assert.ErrorIs(t, err, rental.ErrNotFound)
}

func TestResetClearsSessionsAndDevices(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)
	_, err := s.StartSession(ctx, device.ID, "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.AddCustomer(ctx, &model.Customer{Name: "سارة"}))

	require.NoError(t, s.Reset(ctx))

	var deviceCount, sessionCount, customerCount int64
	testDB.Model(&model.Device{}).Count(&deviceCount)
	testDB.Model(&model.Session{}).Count(&sessionCount)
	testDB.Model(&model.Customer{}).Count(&customerCount)
	assert.Zero(t, deviceCount)
	assert.Zero(t, sessionCount)
	assert.Equal(t, int64(1), customerCount, "reset keeps customers")
}

func TestSnapshotReturnsAllLists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	device := addTestDevice(t, s, "بلايستيشن 5", 30)
	_, err := s.StartSession(ctx, device.ID, "", time.Now().UTC())
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Devices, 1)
	assert.Len(t, snap.Sessions, 1)
	assert.NotNil(t, snap.Customers)
	assert.NotNil(t, snap.Maintenance)
	assert.NotNil(t, snap.Reservations)
	assert.NotNil(t, snap.Reports)
}

// Invariant check used across lifecycle tests: a device is occupied exactly
// when it carries a current session.
func assertDeviceInvariant(t *testing.T, testDB *gorm.DB) {
	t.Helper()
	var devices []model.Device
	require.NoError(t, testDB.Find(&devices).Error)
	for _, d := range devices {
		if d.Status == model.DeviceOccupied {
			assert.NotNil(t, d.CurrentSession, "occupied device %d must embed a session", d.ID)
		} else {
			assert.Nil(t, d.CurrentSession, "available device %d must not embed a session", d.ID)
		}
	}
}

func TestDeviceInvariantHoldsAcrossOperations(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	a := addTestDevice(t, s, "جهاز أ", 30)
	b := addTestDevice(t, s, "جهاز ب", 20)
	assertDeviceInvariant(t, testDB)

	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	_, err := s.StartSession(ctx, a.ID, "", start)
	require.NoError(t, err)
	assertDeviceInvariant(t, testDB)

	_, err = s.StartSession(ctx, a.ID, "", start)
	assert.ErrorIs(t, err, rental.ErrDeviceBusy)
	assertDeviceInvariant(t, testDB)

	_, err = s.EndSession(ctx, a.ID, start.Add(time.Hour))
	require.NoError(t, err)
	assertDeviceInvariant(t, testDB)

	_, err = s.EndSession(ctx, b.ID, start.Add(time.Hour))
	assert.ErrorIs(t, err, rental.ErrNoActiveSession)
	assertDeviceInvariant(t, testDB)
}
