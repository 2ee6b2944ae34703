package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
)

type adminRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewAdminRepo(db *pgxpool.Pool, log logger.ILogger) storage.IAdminStorage {
	return &adminRepo{db: db, log: log}
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	var a models.AdminAccount
	query := `SELECT id, username, password_hash FROM admin_accounts WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get admin account", logger.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) Ensure(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO admin_accounts (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, username, passwordHash)
	if err != nil {
		r.log.Error("failed to ensure admin account", logger.Error(err))
	}
	return err
}
