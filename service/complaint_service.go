package service

import (
	"context"
	"errors"
	"fmt"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

// FileComplaintResult carries the persisted complaint and whether filing it
// pushed the driver over the ban threshold.
type FileComplaintResult struct {
	Complaint      *models.Complaint
	DriverBanned   bool
	ComplaintCount int
}

type ComplaintService interface {
	FileComplaint(ctx context.Context, driverID int64, reasonType, details string) (*FileComplaintResult, error)
	List(ctx context.Context) ([]*models.Complaint, error)
}

type complaintService struct {
	stg     storage.IComplaintStorage
	drivers DriverService
	log     logger.ILogger
}

func NewComplaintService(stg storage.IStorage, drivers DriverService, log logger.ILogger) ComplaintService {
	return &complaintService{
		stg:     stg.Complaint(),
		drivers: drivers,
		log:     log,
	}
}

// FileComplaint verifies the driver exists, persists the complaint, then runs
// the escalation step. If the driver vanishes between the write and the
// escalation, the complaint stays on record and no escalation happens;
// complaint history is never rolled back.
func (s *complaintService) FileComplaint(ctx context.Context, driverID int64, reasonType, details string) (*FileComplaintResult, error) {
	if _, err := s.drivers.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		DriverID: driverID,
		Reason:   fmt.Sprintf("%s: %s", reasonType, details),
		Status:   models.ComplaintStatusPending,
	}

	created, err := s.stg.Create(ctx, complaint)
	if err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	banned, count, err := s.drivers.RegisterComplaintAndMaybeBan(ctx, driverID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warning("driver gone before escalation, complaint kept",
				logger.Int64("driver_id", driverID),
				logger.Int64("complaint_id", created.ID),
			)
			return &FileComplaintResult{Complaint: created}, nil
		}
		return nil, err
	}

	s.log.Info("complaint filed",
		logger.Int64("driver_id", driverID),
		logger.Int("complaint_count", count),
		logger.Bool("driver_banned", banned),
	)
	return &FileComplaintResult{Complaint: created, DriverBanned: banned, ComplaintCount: count}, nil
}

func (s *complaintService) List(ctx context.Context) ([]*models.Complaint, error) {
	return s.stg.GetAll(ctx)
}
