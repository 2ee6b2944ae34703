package storage

import (
	"context"
	"errors"

	"taxidesk/pkg/models"
)

// ErrNotFound is returned by every lookup or update that targets a record
// which does not exist. Callers must not treat it as a backend failure.
var ErrNotFound = errors.New("record not found")

type IStorage interface {
	Vehicle() IVehicleStorage
	Driver() IDriverStorage
	Booking() IBookingStorage
	Complaint() IComplaintStorage
	Admin() IAdminStorage
	Close()
}

type IVehicleStorage interface {
	GetAll(ctx context.Context) ([]*models.Vehicle, error)
}

// DriverUpdate is a partial field set. Nil fields are left untouched;
// the whole set is applied atomically per driver record.
type DriverUpdate struct {
	IsActive          *bool
	AgreementAccepted *bool
	IsBanned          *bool
	ComplaintCount    *int
}

type IDriverStorage interface {
	GetAll(ctx context.Context) ([]*models.Driver, error)
	// GetActive returns drivers with is_active and not is_banned.
	GetActive(ctx context.Context) ([]*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByPhone(ctx context.Context, phone string) (*models.Driver, error)
	Update(ctx context.Context, id int64, upd DriverUpdate) error
	// RegisterComplaint increments complaint_count and, when the new count
	// reaches banThreshold, sets is_banned and clears is_active in the same
	// atomic write. It returns the new count and whether the driver is now
	// banned. Concurrent calls against one driver must serialize.
	RegisterComplaint(ctx context.Context, id int64, banThreshold int) (int, bool, error)
}

type IBookingStorage interface {
	// Create persists the booking with status forced to Pending and
	// is_completed forced to false, whatever the caller set.
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetAll(ctx context.Context) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type IComplaintStorage interface {
	// Create persists the complaint with status forced to Pending.
	Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error)
	GetAll(ctx context.Context) ([]*models.Complaint, error)
}

type IAdminStorage interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminAccount, error)
	// Ensure creates the account when the username is absent; an existing
	// account is left untouched.
	Ensure(ctx context.Context, username, passwordHash string) error
}
