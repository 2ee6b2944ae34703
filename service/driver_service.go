package service

import (
	"context"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

// BanThreshold is the complaint count at which a driver is banned
// automatically.
const BanThreshold = 3

type DriverService interface {
	List(ctx context.Context, activeOnly bool) ([]*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByPhone(ctx context.Context, phone string) (*models.Driver, error)
	AcceptAgreement(ctx context.Context, phone string) error
	ToggleBan(ctx context.Context, id int64) (bool, error)
	RegisterComplaintAndMaybeBan(ctx context.Context, id int64) (bool, int, error)
}

type driverService struct {
	stg storage.IDriverStorage
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, log logger.ILogger) DriverService {
	return &driverService{
		stg: stg.Driver(),
		log: log,
	}
}

func (s *driverService) List(ctx context.Context, activeOnly bool) ([]*models.Driver, error) {
	if activeOnly {
		return s.stg.GetActive(ctx)
	}
	return s.stg.GetAll(ctx)
}

func (s *driverService) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *driverService) GetByPhone(ctx context.Context, phone string) (*models.Driver, error) {
	return s.stg.GetByPhone(ctx, phone)
}

// AcceptAgreement marks the driver with the given phone as having accepted
// the safety agreement. storage.ErrNotFound is returned as-is so the caller
// can tell the driver to contact the admin.
func (s *driverService) AcceptAgreement(ctx context.Context, phone string) error {
	driver, err := s.stg.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	accepted := true
	return s.stg.Update(ctx, driver.ID, storage.DriverUpdate{AgreementAccepted: &accepted})
}

// ToggleBan flips the ban flag regardless of complaint count. Banning takes
// the driver off the active list; unbanning puts them back on it.
func (s *driverService) ToggleBan(ctx context.Context, id int64) (bool, error) {
	driver, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	banned := !driver.IsBanned
	active := !banned
	err = s.stg.Update(ctx, id, storage.DriverUpdate{
		IsBanned: &banned,
		IsActive: &active,
	})
	if err != nil {
		return false, err
	}

	s.log.Info("driver ban toggled",
		logger.Int64("driver_id", id),
		logger.Bool("banned", banned),
	)
	return banned, nil
}

// RegisterComplaintAndMaybeBan adds one complaint to the driver's count and
// bans them the moment the count reaches BanThreshold. The increment and the
// threshold decision happen in a single storage write.
func (s *driverService) RegisterComplaintAndMaybeBan(ctx context.Context, id int64) (bool, int, error) {
	count, banned, err := s.stg.RegisterComplaint(ctx, id, BanThreshold)
	if err != nil {
		return false, 0, err
	}
	if banned {
		s.log.Warning("driver auto-banned after repeated complaints",
			logger.Int64("driver_id", id),
			logger.Int("complaint_count", count),
		)
	}
	return banned, count, nil
}
