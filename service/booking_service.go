package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

// requestedTimeLayout matches the HTML datetime-local input format.
const requestedTimeLayout = "2006-01-02T15:04"

// ErrInvalidStatus is returned by SetStatus for a status outside the
// Pending/Confirmed/Completed/Cancelled set.
var ErrInvalidStatus = errors.New("invalid booking status")

type SubmitBookingRequest struct {
	CustomerName string
	Phone        string
	Pickup       string
	Drop         string
	VehicleType  string
	// DateTime is the raw text from the booking form.
	DateTime     string
	SpecialNotes string
	PrivacyMode  bool
}

type BookingService interface {
	Submit(ctx context.Context, req SubmitBookingRequest) (*models.Booking, error)
	SetStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context) ([]*models.Booking, error)
}

type bookingService struct {
	stg storage.IBookingStorage
	log logger.ILogger
	now func() time.Time
}

func NewBookingService(stg storage.IStorage, log logger.ILogger) BookingService {
	return &bookingService{
		stg: stg.Booking(),
		log: log,
		now: time.Now,
	}
}

// parseRequestedTime implements the substitute-now policy: an empty or
// unparseable requested time falls back to the current server time instead of
// rejecting the booking. A walk-in customer who mistypes the date still gets
// a booking, timestamped now.
func (s *bookingService) parseRequestedTime(raw string) time.Time {
	if raw == "" {
		return s.now()
	}
	t, err := time.Parse(requestedTimeLayout, raw)
	if err != nil {
		s.log.Warning("unparseable booking time, substituting current time",
			logger.String("raw", raw),
		)
		return s.now()
	}
	return t
}

// Submit creates the booking in Pending state. The requested time follows the
// substitute-now policy, never an error.
func (s *bookingService) Submit(ctx context.Context, req SubmitBookingRequest) (*models.Booking, error) {
	booking := &models.Booking{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		PickupLocation: req.Pickup,
		DropLocation:   req.Drop,
		VehicleType:    req.VehicleType,
		DateTime:       s.parseRequestedTime(req.DateTime),
		Status:         models.BookingStatusPending,
		SpecialNotes:   req.SpecialNotes,
		PrivacyMode:    req.PrivacyMode,
	}

	created, err := s.stg.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("booking submitted",
		logger.Int64("booking_id", created.ID),
		logger.String("vehicle_type", created.VehicleType),
		logger.Bool("privacy_mode", created.PrivacyMode),
	)
	return created, nil
}

// SetStatus moves a booking to one of the four states. Unknown values are
// rejected with ErrInvalidStatus rather than written through.
func (s *bookingService) SetStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidBookingStatus(status) {
		return ErrInvalidStatus
	}
	return s.stg.UpdateStatus(ctx, id, status)
}

func (s *bookingService) List(ctx context.Context) ([]*models.Booking, error) {
	return s.stg.GetAll(ctx)
}
