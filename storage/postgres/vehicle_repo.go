package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

type vehicleRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewVehicleRepo(db *pgxpool.Pool, log logger.ILogger) storage.IVehicleStorage {
	return &vehicleRepo{db: db, log: log}
}

func (r *vehicleRepo) GetAll(ctx context.Context) ([]*models.Vehicle, error) {
	query := `SELECT id, name, type, price_per_km, base_fare, image_url FROM vehicles`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.PricePerKm, &v.BaseFare, &v.ImageURL)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}
