package service

import (
	"github.com/redis/go-redis/v9"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/storage"
)

type IServiceManager interface {
	Vehicle() VehicleService
	Driver() DriverService
	Booking() BookingService
	Complaint() ComplaintService
	Auth() AuthService
}

type service struct {
	vehicleService   VehicleService
	driverService    DriverService
	bookingService   BookingService
	complaintService ComplaintService
	authService      AuthService
}

// New wires the services. cache may be nil, in which case the vehicle
// catalog is read straight from storage on every call.
func New(stg storage.IStorage, cache *redis.Client, cfg config.Config, log logger.ILogger) IServiceManager {
	driverService := NewDriverService(stg, log)
	return &service{
		vehicleService:   NewVehicleService(stg, cache, cfg, log),
		driverService:    driverService,
		bookingService:   NewBookingService(stg, log),
		complaintService: NewComplaintService(stg, driverService, log),
		authService:      NewAuthService(stg, cfg.JWTSecret, log),
	}
}

func (s *service) Vehicle() VehicleService {
	return s.vehicleService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Booking() BookingService {
	return s.bookingService
}

func (s *service) Complaint() ComplaintService {
	return s.complaintService
}

func (s *service) Auth() AuthService {
	return s.authService
}
