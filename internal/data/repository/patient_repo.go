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

type PatientRepository interface {
	// Create runs inside the booking's atomic unit, hence the explicit
	// Querier.
	Create(ctx context.Context, q database.Querier, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
}

type patientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPatientRepository(db database.PgxIface, log *zap.Logger) PatientRepository {
	return &patientRepository{
		db:  db,
		log: log.With(zap.String("repository", "patient")),
	}
}

func (r *patientRepository) Create(ctx context.Context, q database.Querier, patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, name, age, gender, reason, location, doctor_id, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		patient.ID,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.Reason,
		patient.Location,
		patient.DoctorID,
		patient.VisitedAt,
	)

	if err != nil {
		r.log.Error("Failed to create patient",
			zap.Error(err),
			zap.String("doctor_id", patient.DoctorID.String()),
		)
		return fmt.Errorf("create patient for doctor %s: %w", patient.DoctorID.String(), err)
	}

	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	query := `
		SELECT id, name, age, gender, reason, location, doctor_id, visited_at
		FROM patients
		WHERE id = $1
	`

	var patient entity.Patient
	err := r.db.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.Name,
		&patient.Age,
		&patient.Gender,
		&patient.Reason,
		&patient.Location,
		&patient.DoctorID,
		&patient.VisitedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find patient by ID",
			zap.Error(err),
			zap.String("patient_id", id.String()),
		)
		return nil, fmt.Errorf("find patient by ID %s: %w", id.String(), err)
	}

	return &patient, nil
}
