package repository

import (
	"context"
	"fmt"

	"hospital-booking/internal/data/entity"
	"hospital-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// HospitalRepository keeps at most one profile row: the latest
// registration wins.
type HospitalRepository interface {
	Save(ctx context.Context, hospital *entity.Hospital) error
	Get(ctx context.Context) (*entity.Hospital, error)
}

type hospitalRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHospitalRepository(db database.PgxIface, log *zap.Logger) HospitalRepository {
	return &hospitalRepository{
		db:  db,
		log: log.With(zap.String("repository", "hospital")),
	}
}

func (r *hospitalRepository) Save(ctx context.Context, hospital *entity.Hospital) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin hospital save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM hospital_profile`); err != nil {
		return fmt.Errorf("clear hospital profile: %w", err)
	}

	query := `
		INSERT INTO hospital_profile (id, name, location, contact, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.Location,
		hospital.Contact,
		hospital.Username,
		hospital.PasswordHash,
		hospital.CreatedAt,
		hospital.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to save hospital profile",
			zap.Error(err),
			zap.String("name", hospital.Name),
		)
		return fmt.Errorf("save hospital profile %s: %w", hospital.Name, err)
	}

	return tx.Commit(ctx)
}

func (r *hospitalRepository) Get(ctx context.Context) (*entity.Hospital, error) {
	query := `
		SELECT id, name, location, contact, username, password_hash, created_at, updated_at
		FROM hospital_profile
		ORDER BY created_at DESC
		LIMIT 1
	`

	var hospital entity.Hospital
	err := r.db.QueryRow(ctx, query).Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.Location,
		&hospital.Contact,
		&hospital.Username,
		&hospital.PasswordHash,
		&hospital.CreatedAt,
		&hospital.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load hospital profile", zap.Error(err))
		return nil, fmt.Errorf("load hospital profile: %w", err)
	}

	return &hospital, nil
}
