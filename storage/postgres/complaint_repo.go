package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

type complaintRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewComplaintRepo(db *pgxpool.Pool, log logger.ILogger) storage.IComplaintStorage {
	return &complaintRepo{db: db, log: log}
}

func (r *complaintRepo) Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error) {
	query := `
		INSERT INTO complaints (booking_id, driver_id, reason, status, date_time)
		VALUES ($1, $2, $3, 'Pending', NOW())
		RETURNING id, status, date_time
	`
	err := r.db.QueryRow(ctx, query,
		complaint.BookingID,
		complaint.DriverID,
		complaint.Reason,
	).Scan(&complaint.ID, &complaint.Status, &complaint.DateTime)

	if err != nil {
		r.log.Error("failed to create complaint", logger.Error(err))
		return nil, err
	}

	return complaint, nil
}

func (r *complaintRepo) GetAll(ctx context.Context) ([]*models.Complaint, error) {
	query := `
		SELECT id, booking_id, driver_id, reason, status, date_time
		FROM complaints
		ORDER BY date_time DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		var c models.Complaint
		err := rows.Scan(&c.ID, &c.BookingID, &c.DriverID, &c.Reason, &c.Status, &c.DateTime)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, &c)
	}
	return complaints, rows.Err()
}
