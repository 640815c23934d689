package repository

import (
	"context"
	"fmt"

	"hospital-booking/internal/data/entity"
	"hospital-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindAllActive(ctx context.Context) ([]*entity.Doctor, error)

	// FindByIDForUpdate locks the doctor row for the rest of the atomic
	// unit. All bookings and queue mutations for one doctor serialize on
	// this lock, so no two can compute the same queue position.
	FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Doctor, error)
	Touch(ctx context.Context, q database.Querier, id uuid.UUID) error

	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdateFee(ctx context.Context, id uuid.UUID, fee float64, currency string) error
}

type doctorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDoctorRepository(db database.PgxIface, log *zap.Logger) DoctorRepository {
	return &doctorRepository{
		db:  db,
		log: log.With(zap.String("repository", "doctor")),
	}
}

const doctorColumns = `id, name, specialization, schedule, fee, currency, active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Schedule,
		&doctor.Fee,
		&doctor.Currency,
		&doctor.Active,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	query := `
		INSERT INTO doctors (id, name, specialization, schedule, fee, currency, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.Schedule,
		doctor.Fee,
		doctor.Currency,
		doctor.Active,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create doctor",
			zap.Error(err),
			zap.String("name", doctor.Name),
		)
		return fmt.Errorf("create doctor %s: %w", doctor.Name, err)
	}

	return nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	doctor, err := scanDoctor(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find doctor by ID",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
		)
		return nil, fmt.Errorf("find doctor by ID %s: %w", id.String(), err)
	}

	return doctor, nil
}

func (r *doctorRepository) FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1 FOR UPDATE`

	doctor, err := scanDoctor(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock doctor row",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
		)
		return nil, fmt.Errorf("lock doctor %s: %w", id.String(), err)
	}

	return doctor, nil
}

func (r *doctorRepository) FindAllActive(ctx context.Context) ([]*entity.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE active = true ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list active doctors", zap.Error(err))
		return nil, fmt.Errorf("list active doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*entity.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor row: %w", err)
		}
		doctors = append(doctors, doctor)
	}

	return doctors, rows.Err()
}

func (r *doctorRepository) Touch(ctx context.Context, q database.Querier, id uuid.UUID) error {
	query := `UPDATE doctors SET updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("touch doctor %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s not found", id.String())
	}

	return nil
}

func (r *doctorRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE doctors SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set doctor active flag",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set doctor %s active=%t: %w", id.String(), active, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s not found", id.String())
	}

	return nil
}

func (r *doctorRepository) UpdateFee(ctx context.Context, id uuid.UUID, fee float64, currency string) error {
	query := `UPDATE doctors SET fee = $2, currency = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, fee, currency)
	if err != nil {
		r.log.Error("Failed to update doctor fee",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
			zap.Float64("fee", fee),
		)
		return fmt.Errorf("update doctor %s fee: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s not found", id.String())
	}

	return nil
}
