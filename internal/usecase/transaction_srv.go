package usecase

import (
	"context"
	"fmt"

	"hospital-booking/internal/data/entity"
	"hospital-booking/internal/data/repository"
	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/dto/response"
	"hospital-booking/pkg/database"

	"go.uber.org/zap"
)

// TransactionService is the ledger: it owns the status state machine and
// the reporting queries.
type TransactionService interface {
	Transition(ctx context.Context, q database.Querier, txn *entity.Transaction, next entity.TransactionStatus, gatewayResponse map[string]any) error
	GetByRef(ctx context.Context, ref string) (*entity.Transaction, error)
	ListByDoctor(ctx context.Context, doctorID, statusFilter string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionResponse], error)
	ListAll(ctx context.Context, statusFilter string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionResponse], error)
}

type transactionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTransactionService(repo *repository.Repository, log *zap.Logger) TransactionService {
	return &transactionService{
		repo: repo,
		log:  log.With(zap.String("service", "transaction")),
	}
}

func (s *transactionService) Transition(ctx context.Context, q database.Querier, txn *entity.Transaction, next entity.TransactionStatus, gatewayResponse map[string]any) error {
	if !txn.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s for %s", ErrInvalidTransition, txn.Status, next, txn.TransactionRef)
	}

	if err := s.repo.Transaction.UpdateStatus(ctx, q, txn.TransactionRef, next, gatewayResponse); err != nil {
		return err
	}

	s.log.Info("Transaction status updated",
		zap.String("transaction_ref", txn.TransactionRef),
		zap.String("from", string(txn.Status)),
		zap.String("to", string(next)),
	)

	txn.Status = next
	if gatewayResponse != nil {
		txn.GatewayResponse = gatewayResponse
	}

	return nil
}

func (s *transactionService) GetByRef(ctx context.Context, ref string) (*entity.Transaction, error) {
	txn, err := s.repo.Transaction.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, ref)
	}
	return txn, nil
}

func parseStatusFilter(statusFilter string) (*entity.TransactionStatus, error) {
	if statusFilter == "" {
		return nil, nil
	}

	status := entity.TransactionStatus(statusFilter)
	switch status {
	case entity.TransactionPending, entity.TransactionCompleted, entity.TransactionFailed, entity.TransactionRefunded:
		return &status, nil
	default:
		return nil, &ValidationError{Messages: []string{
			fmt.Sprintf("Status must be one of: pending, completed, failed, refunded (got %q)", statusFilter),
		}}
	}
}

func (s *transactionService) ListByDoctor(ctx context.Context, doctorID, statusFilter string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionResponse], error) {
	id, err := parseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}

	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	txns, err := s.repo.Transaction.ListByDoctor(ctx, id, status, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list doctor transactions",
			zap.Error(err),
			zap.String("doctor_id", doctorID),
		)
		return nil, fmt.Errorf("list transactions for doctor %s: %w", doctorID, err)
	}

	total, err := s.repo.Transaction.CountByDoctor(ctx, id, status)
	if err != nil {
		return nil, err
	}

	return buildTransactionPage(txns, req, total), nil
}

func (s *transactionService) ListAll(ctx context.Context, statusFilter string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionResponse], error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	txns, err := s.repo.Transaction.ListAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list transactions", zap.Error(err))
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	total, err := s.repo.Transaction.CountAll(ctx, status)
	if err != nil {
		return nil, err
	}

	return buildTransactionPage(txns, req, total), nil
}

func buildTransactionPage(txns []*entity.Transaction, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.TransactionResponse] {
	items := make([]response.TransactionResponse, len(txns))
	for i, txn := range txns {
		items[i] = response.TransactionToResponse(txn)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total)
}
