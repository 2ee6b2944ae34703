package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = `id, name, phone, vehicle_number, photo_url, is_active, agreement_accepted, is_banned, complaint_count`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.Name, &d.Phone, &d.VehicleNumber, &d.PhotoURL,
		&d.IsActive, &d.AgreementAccepted, &d.IsBanned, &d.ComplaintCount,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepo) GetActive(ctx context.Context) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers WHERE is_active = true AND is_banned = false`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get driver by id", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetByPhone(ctx context.Context, phone string) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE phone = $1`, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get driver by phone", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) Update(ctx context.Context, id int64, upd storage.DriverUpdate) error {
	set := ""
	args := []interface{}{}
	add := func(col string, val interface{}) {
		if set != "" {
			set += ", "
		}
		args = append(args, val)
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}

	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if upd.AgreementAccepted != nil {
		add("agreement_accepted", *upd.AgreementAccepted)
	}
	if upd.IsBanned != nil {
		add("is_banned", *upd.IsBanned)
	}
	if upd.ComplaintCount != nil {
		add("complaint_count", *upd.ComplaintCount)
	}
	if set == "" {
		return nil
	}

	args = append(args, id)
	tag, err := r.db.Exec(ctx, fmt.Sprintf("UPDATE drivers SET %s WHERE id = $%d", set, len(args)), args...)
	if err != nil {
		r.log.Error("failed to update driver", logger.Int64("driver_id", id), logger.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RegisterComplaint folds the threshold decision into the increment so the
// row moves from its old count to (count, banned) in one statement. Two
// concurrent complaints against one driver serialize on the row lock and each
// sees the other's increment. The returned flag is the threshold decision for
// the new count, not the stored ban flag: a manual ban at a low count must
// not read back as an auto-ban.
func (r *driverRepo) RegisterComplaint(ctx context.Context, id int64, banThreshold int) (int, bool, error) {
	query := `
		UPDATE drivers
		SET complaint_count = complaint_count + 1,
		    is_banned = is_banned OR (complaint_count + 1 >= $2),
		    is_active = is_active AND (complaint_count + 1 < $2)
		WHERE id = $1
		RETURNING complaint_count, complaint_count >= $2
	`
	var count int
	var banned bool
	err := r.db.QueryRow(ctx, query, id, banThreshold).Scan(&count, &banned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, storage.ErrNotFound
		}
		r.log.Error("failed to register complaint against driver", logger.Int64("driver_id", id), logger.Error(err))
		return 0, false, err
	}
	return count, banned, nil
}
