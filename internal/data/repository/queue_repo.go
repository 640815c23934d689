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

// QueueRepository is the per-doctor walk-in queue. Insertion order is
// kept by a serial seq column; positions are always derived from it, so
// a dequeue shifts every later entry up by one.
type QueueRepository interface {
	Append(ctx context.Context, q database.Querier, entry *entity.QueueEntry) (int, error)
	List(ctx context.Context, doctorID uuid.UUID) ([]*entity.QueueEntry, error)
	PeekFront(ctx context.Context, doctorID uuid.UUID) (*entity.QueueEntry, error)
	DequeueFront(ctx context.Context, q database.Querier, doctorID uuid.UUID) (*entity.QueueEntry, error)
	PositionOf(ctx context.Context, doctorID uuid.UUID, patientName string) (int, error)
	Length(ctx context.Context, q database.Querier, doctorID uuid.UUID) (int, error)
}

type queueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQueueRepository(db database.PgxIface, log *zap.Logger) QueueRepository {
	return &queueRepository{
		db:  db,
		log: log.With(zap.String("repository", "queue")),
	}
}

const queueColumns = `id, doctor_id, patient_id, patient_name, gender, reason, age, location, payment_status, transaction_ref, joined_at`

func scanQueueEntry(row pgx.Row) (*entity.QueueEntry, error) {
	var entry entity.QueueEntry
	err := row.Scan(
		&entry.ID,
		&entry.DoctorID,
		&entry.PatientID,
		&entry.PatientName,
		&entry.Gender,
		&entry.Reason,
		&entry.Age,
		&entry.Location,
		&entry.PaymentStatus,
		&entry.TransactionRef,
		&entry.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *queueRepository) Append(ctx context.Context, q database.Querier, entry *entity.QueueEntry) (int, error) {
	query := `
		INSERT INTO queue_entries (id, doctor_id, patient_id, patient_name, gender, reason, age, location, payment_status, transaction_ref, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		entry.ID,
		entry.DoctorID,
		entry.PatientID,
		entry.PatientName,
		entry.Gender,
		entry.Reason,
		entry.Age,
		entry.Location,
		entry.PaymentStatus,
		entry.TransactionRef,
		entry.JoinedAt,
	)
	if err != nil {
		r.log.Error("Failed to append queue entry",
			zap.Error(err),
			zap.String("doctor_id", entry.DoctorID.String()),
		)
		return 0, fmt.Errorf("append queue entry for doctor %s: %w", entry.DoctorID.String(), err)
	}

	// Position = new queue length. The caller holds the doctor row lock,
	// so the count cannot race another append.
	position, err := r.Length(ctx, q, entry.DoctorID)
	if err != nil {
		return 0, err
	}

	return position, nil
}

func (r *queueRepository) Length(ctx context.Context, q database.Querier, doctorID uuid.UUID) (int, error) {
	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM queue_entries WHERE doctor_id = $1`, doctorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count queue for doctor %s: %w", doctorID.String(), err)
	}
	return count, nil
}

func (r *queueRepository) List(ctx context.Context, doctorID uuid.UUID) ([]*entity.QueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_entries WHERE doctor_id = $1 ORDER BY seq`

	rows, err := r.db.Query(ctx, query, doctorID)
	if err != nil {
		r.log.Error("Failed to list queue",
			zap.Error(err),
			zap.String("doctor_id", doctorID.String()),
		)
		return nil, fmt.Errorf("list queue for doctor %s: %w", doctorID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.QueueEntry
	for rows.Next() {
		entry, err := scanQueueEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan queue entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *queueRepository) PeekFront(ctx context.Context, doctorID uuid.UUID) (*entity.QueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_entries WHERE doctor_id = $1 ORDER BY seq LIMIT 1`

	entry, err := scanQueueEntry(r.db.QueryRow(ctx, query, doctorID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("peek queue front for doctor %s: %w", doctorID.String(), err)
	}

	return entry, nil
}

func (r *queueRepository) DequeueFront(ctx context.Context, q database.Querier, doctorID uuid.UUID) (*entity.QueueEntry, error) {
	query := `
		DELETE FROM queue_entries
		WHERE id = (
			SELECT id FROM queue_entries WHERE doctor_id = $1 ORDER BY seq LIMIT 1
		)
		RETURNING ` + queueColumns

	entry, err := scanQueueEntry(q.QueryRow(ctx, query, doctorID))
	if err == pgx.ErrNoRows {
		// Empty queue is not an error
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to dequeue front",
			zap.Error(err),
			zap.String("doctor_id", doctorID.String()),
		)
		return nil, fmt.Errorf("dequeue front for doctor %s: %w", doctorID.String(), err)
	}

	return entry, nil
}

func (r *queueRepository) PositionOf(ctx context.Context, doctorID uuid.UUID, patientName string) (int, error) {
	query := `
		SELECT pos FROM (
			SELECT patient_name, ROW_NUMBER() OVER (ORDER BY seq) AS pos
			FROM queue_entries
			WHERE doctor_id = $1
		) ranked
		WHERE patient_name = $2
		ORDER BY pos
		LIMIT 1
	`

	var position int
	err := r.db.QueryRow(ctx, query, doctorID, patientName).Scan(&position)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("position of %q for doctor %s: %w", patientName, doctorID.String(), err)
	}

	return position, nil
}
