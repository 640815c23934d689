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

type TransactionRepository interface {
	Create(ctx context.Context, q database.Querier, txn *entity.Transaction) error
	FindByRef(ctx context.Context, ref string) (*entity.Transaction, error)
	UpdateStatus(ctx context.Context, q database.Querier, ref string, status entity.TransactionStatus, gatewayResponse map[string]any) error

	ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID, status *entity.TransactionStatus) (int64, error)
	ListAll(ctx context.Context, status *entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error)
	CountAll(ctx context.Context, status *entity.TransactionStatus) (int64, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

const transactionColumns = `id, doctor_id, patient_id, patient_name, amount, currency, payment_method, status, transaction_ref, gateway_response, queue_position, created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := row.Scan(
		&txn.ID,
		&txn.DoctorID,
		&txn.PatientID,
		&txn.PatientName,
		&txn.Amount,
		&txn.Currency,
		&txn.PaymentMethod,
		&txn.Status,
		&txn.TransactionRef,
		&txn.GatewayResponse,
		&txn.QueuePosition,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) Create(ctx context.Context, q database.Querier, txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, doctor_id, patient_id, patient_name, amount, currency, payment_method, status, transaction_ref, gateway_response, queue_position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := q.Exec(ctx, query,
		txn.ID,
		txn.DoctorID,
		txn.PatientID,
		txn.PatientName,
		txn.Amount,
		txn.Currency,
		txn.PaymentMethod,
		txn.Status,
		txn.TransactionRef,
		txn.GatewayResponse,
		txn.QueuePosition,
		txn.CreatedAt,
		txn.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create transaction",
			zap.Error(err),
			zap.String("transaction_ref", txn.TransactionRef),
			zap.String("doctor_id", txn.DoctorID.String()),
		)
		return fmt.Errorf("create transaction %s: %w", txn.TransactionRef, err)
	}

	return nil
}

func (r *transactionRepository) FindByRef(ctx context.Context, ref string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_ref = $1`

	txn, err := scanTransaction(r.db.QueryRow(ctx, query, ref))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find transaction by reference",
			zap.Error(err),
			zap.String("transaction_ref", ref),
		)
		return nil, fmt.Errorf("find transaction %s: %w", ref, err)
	}

	return txn, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, q database.Querier, ref string, status entity.TransactionStatus, gatewayResponse map[string]any) error {
	query := `
		UPDATE transactions
		SET status = $2,
		    gateway_response = COALESCE($3, gateway_response),
		    updated_at = NOW()
		WHERE transaction_ref = $1
	`

	result, err := q.Exec(ctx, query, ref, status, gatewayResponse)
	if err != nil {
		r.log.Error("Failed to update transaction status",
			zap.Error(err),
			zap.String("transaction_ref", ref),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update transaction %s status to %s: %w", ref, string(status), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s not found", ref)
	}

	return nil
}

func (r *transactionRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE doctor_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, doctorID, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list transactions by doctor",
			zap.Error(err),
			zap.String("doctor_id", doctorID.String()),
		)
		return nil, fmt.Errorf("list transactions for doctor %s: %w", doctorID.String(), err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *transactionRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID, status *entity.TransactionStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE doctor_id = $1 AND ($2::text IS NULL OR status = $2)`

	var total int64
	if err := r.db.QueryRow(ctx, query, doctorID, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions for doctor %s: %w", doctorID.String(), err)
	}

	return total, nil
}

func (r *transactionRepository) ListAll(ctx context.Context, status *entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list all transactions", zap.Error(err))
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *transactionRepository) CountAll(ctx context.Context, status *entity.TransactionStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE ($1::text IS NULL OR status = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}

	return total, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	var txns []*entity.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
