package store

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"console-rental-backend/internal/model"
	"console-rental-backend/internal/rental"
)

// Store defines the interface for all database operations. Mutations that
// touch a device/session pair run inside a single transaction so the pair is
// updated atomically or not at all.
type Store interface {
	DB() *gorm.DB

	Snapshot(ctx context.Context) (*model.Snapshot, error)

	AddDevice(ctx context.Context, device *model.Device) error
	UpdateDevice(ctx context.Context, device *model.Device) error
	DeleteDevice(ctx context.Context, id int64) error

	StartSession(ctx context.Context, deviceID int64, customerName string, now time.Time) (*model.Session, error)
	EndSession(ctx context.Context, deviceID int64, now time.Time) (*model.Session, error)
	UpdateSession(ctx context.Context, session *model.Session) error

	AddMaintenance(ctx context.Context, record *model.MaintenanceRecord) error
	GenerateDailyReport(ctx context.Context, date string, now time.Time) (*model.DailyReport, error)

	AddCustomer(ctx context.Context, customer *model.Customer) error
	UpdateCustomer(ctx context.Context, customer *model.Customer) error
	AdjustCustomerBalance(ctx context.Context, customerID int64, amount float64) error

	AddReservation(ctx context.Context, reservation *model.Reservation) error
	UpdateReservation(ctx context.Context, reservation *model.Reservation) error

	Reset(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for read-only queries and associations.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Snapshot reads the entire state of the rental desk. A read failure degrades
// to an empty snapshot so the desk can keep operating, but is logged loudly:
// an empty store and a broken store must be distinguishable in the logs.
func (s *gormStore) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Devices:      []model.Device{},
		Customers:    []model.Customer{},
		Sessions:     []model.Session{},
		Maintenance:  []model.MaintenanceRecord{},
		Reservations: []model.Reservation{},
		Reports:      []model.DailyReport{},
	}

	db := s.db.WithContext(ctx)
	for _, read := range []error{
		db.Order("id").Find(&snap.Devices).Error,
		db.Order("id").Find(&snap.Customers).Error,
		db.Order("id").Find(&snap.Sessions).Error,
		db.Order("id").Find(&snap.Maintenance).Error,
		db.Order("id").Find(&snap.Reservations).Error,
		db.Order("id").Find(&snap.Reports).Error,
	} {
		if read != nil {
			log.Printf("WARNING: snapshot read failed, serving empty snapshot: %v", read)
			return &model.Snapshot{
				Devices:      []model.Device{},
				Customers:    []model.Customer{},
				Sessions:     []model.Session{},
				Maintenance:  []model.MaintenanceRecord{},
				Reservations: []model.Reservation{},
				Reports:      []model.DailyReport{},
			}, nil
		}
	}
	return snap, nil
}

// AddDevice creates a device. A new device is always available with no
// current session, regardless of what the caller filled in.
func (s *gormStore) AddDevice(ctx context.Context, device *model.Device) error {
	device.ID = 0
	device.Status = model.DeviceAvailable
	device.CurrentSession = nil
	if device.MaintenanceHistory == nil {
		device.MaintenanceHistory = []model.MaintenanceRecord{}
	}
	return s.db.WithContext(ctx).Create(device).Error
}

// UpdateDevice replaces a device record wholesale.
func (s *gormStore) UpdateDevice(ctx context.Context, device *model.Device) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Device
		if err := tx.First(&existing, device.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rental.ErrNotFound
			}
			return err
		}
		device.CreatedAt = existing.CreatedAt
		return tx.Save(device).Error
	})
}

// DeleteDevice removes a device. Its sessions are deliberately left in place
// with a dangling deviceId; there is no cascade.
func (s *gormStore) DeleteDevice(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Device{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return rental.ErrNotFound
	}
	return nil
}

// UpdateSession replaces a session record wholesale (corrective edits).
func (s *gormStore) UpdateSession(ctx context.Context, session *model.Session) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Session
		if err := tx.First(&existing, session.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rental.ErrNotFound
			}
			return err
		}
		return tx.Save(session).Error
	})
}

// AddCustomer creates a customer.
func (s *gormStore) AddCustomer(ctx context.Context, customer *model.Customer) error {
	customer.ID = 0
	if customer.Membership == "" {
		customer.Membership = model.MembershipRegular
	}
	if customer.FavoriteGames == nil {
		customer.FavoriteGames = []string{}
	}
	return s.db.WithContext(ctx).Create(customer).Error
}

// UpdateCustomer replaces a customer record wholesale.
func (s *gormStore) UpdateCustomer(ctx context.Context, customer *model.Customer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Customer
		if err := tx.First(&existing, customer.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rental.ErrNotFound
			}
			return err
		}
		return tx.Save(customer).Error
	})
}

// AdjustCustomerBalance applies a signed delta to a customer's balance.
// A missing customer is a silent no-op, not an error, so batch flows never
// abort halfway.
func (s *gormStore) AdjustCustomerBalance(ctx context.Context, customerID int64, amount float64) error {
	return s.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", customerID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}

// AddReservation creates a reservation.
func (s *gormStore) AddReservation(ctx context.Context, reservation *model.Reservation) error {
	reservation.ID = 0
	if reservation.Status == "" {
		reservation.Status = model.ReservationPending
	}
	return s.db.WithContext(ctx).Create(reservation).Error
}

// UpdateReservation replaces a reservation record wholesale.
func (s *gormStore) UpdateReservation(ctx context.Context, reservation *model.Reservation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Reservation
		if err := tx.First(&existing, reservation.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rental.ErrNotFound
			}
			return err
		}
		return tx.Save(reservation).Error
	})
}

// Reset wipes sessions first and then devices, in that order to respect the
// reference between them. Customers, maintenance, reservations and reports
// are kept.
func (s *gormStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.Device{}).Error
	})
}
