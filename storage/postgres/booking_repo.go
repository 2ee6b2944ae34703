package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

type bookingRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewBookingRepo(db *pgxpool.Pool, log logger.ILogger) storage.IBookingStorage {
	return &bookingRepo{db: db, log: log}
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	// status and is_completed are forced here, not trusted from the caller
	query := `
		INSERT INTO bookings (customer_name, phone, pickup_location, drop_location, vehicle_type, date_time, status, special_notes, privacy_mode, is_completed, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6, 'Pending', $7, $8, false, $9)
		RETURNING id, status, is_completed
	`
	err := r.db.QueryRow(ctx, query,
		booking.CustomerName,
		booking.Phone,
		booking.PickupLocation,
		booking.DropLocation,
		booking.VehicleType,
		booking.DateTime,
		booking.SpecialNotes,
		booking.PrivacyMode,
		booking.DriverID,
	).Scan(&booking.ID, &booking.Status, &booking.IsCompleted)

	if err != nil {
		r.log.Error("failed to create booking", logger.Error(err))
		return nil, err
	}

	return booking, nil
}

func (r *bookingRepo) GetAll(ctx context.Context) ([]*models.Booking, error) {
	query := `
		SELECT id, customer_name, phone, pickup_location, drop_location, vehicle_type, date_time, status, special_notes, privacy_mode, is_completed, driver_id
		FROM bookings
		ORDER BY date_time DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.CustomerName, &b.Phone, &b.PickupLocation, &b.DropLocation,
			&b.VehicleType, &b.DateTime, &b.Status, &b.SpecialNotes, &b.PrivacyMode,
			&b.IsCompleted, &b.DriverID,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = $1, is_completed = ($1 = 'Completed') WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.log.Error("failed to update booking status", logger.Int64("booking_id", id), logger.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
