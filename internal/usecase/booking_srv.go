package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-booking/internal/data/entity"
	"hospital-booking/internal/data/repository"
	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/dto/response"
	"hospital-booking/internal/gateway"
	"hospital-booking/pkg/database"
	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

// ProviderRegistry resolves a payment method to its gateway provider.
type ProviderRegistry interface {
	Provider(method entity.PaymentMethod) (gateway.Provider, error)
}

type BookingService interface {
	// Single-step flow: payment settles during the request.
	Pay(ctx context.Context, doctorID string, req *request.PayRequest) (*response.BookingResponse, error)

	// Two-step flow: CreateOrder prices the booking and opens a gateway
	// order; VerifyPayment checks the signed callback and persists.
	CreateOrder(ctx context.Context, doctorID string, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	VerifyPayment(ctx context.Context, doctorID string, req *request.VerifyPaymentRequest) (*response.BookingResponse, error)

	Refund(ctx context.Context, transactionRef, reason string) (*response.RefundResponse, error)
	Next(ctx context.Context, doctorID string) (*response.QueueEntryResponse, error)
}

type bookingService struct {
	db       database.PgxIface
	repo     *repository.Repository
	ledger   TransactionService
	gateways ProviderRegistry
	config   utils.GatewayConfig
	log      *zap.Logger
}

func NewBookingService(
	db database.PgxIface,
	repo *repository.Repository,
	ledger TransactionService,
	gateways ProviderRegistry,
	config utils.GatewayConfig,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		db:       db,
		repo:     repo,
		ledger:   ledger,
		gateways: gateways,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Pay(ctx context.Context, doctorID string, req *request.PayRequest) (*response.BookingResponse, error) {
	id, err := parseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}

	if errs := validatePatientData(req.PatientName, req.Age, req.Gender, req.Reason, req.Location); len(errs) > 0 {
		s.log.Warn("Pay validation failed", zap.Strings("errors", errs))
		return nil, &ValidationError{Messages: errs}
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = entity.PaymentMethodMock
	}

	provider, err := s.gateways.Provider(method)
	if err != nil {
		return nil, err
	}

	// Atomic unit: patient, transaction, queue entry and doctor all
	// commit together or not at all.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin booking: %w", err)
	}
	defer tx.Rollback(ctx)

	// Row lock serializes every booking for this doctor, so the queue
	// position below cannot be handed out twice.
	doctor, err := s.repo.Doctor.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}
	if !doctor.Active {
		return nil, fmt.Errorf("%w: %s", ErrDoctorUnavailable, doctor.Name)
	}

	now := time.Now()
	patient := &entity.Patient{
		ID:        utils.GenerateUUID(),
		Name:      req.PatientName,
		Age:       req.Age,
		Gender:    entity.Gender(req.Gender),
		Reason:    req.Reason,
		Location:  req.Location,
		DoctorID:  doctor.ID,
		VisitedAt: now,
	}
	if err := s.repo.Patient.Create(ctx, tx, patient); err != nil {
		return nil, err
	}

	queueLength, err := s.repo.Queue.Length(ctx, tx, doctor.ID)
	if err != nil {
		return nil, err
	}
	queuePosition := queueLength + 1

	txnRef := utils.GenerateTransactionRef()
	txn := &entity.Transaction{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		DoctorID:       doctor.ID,
		PatientID:      patient.ID,
		PatientName:    req.PatientName,
		Amount:         doctor.Fee,
		Currency:       doctor.Currency,
		PaymentMethod:  method,
		Status:         entity.TransactionPending,
		TransactionRef: txnRef,
		QueuePosition:  queuePosition,
	}
	if err := s.repo.Transaction.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, s.config.InitiateTimeout)
	defer cancel()

	result, err := provider.Initiate(gatewayCtx, &gateway.InitiateRequest{
		AmountMinor: gateway.MinorUnits(doctor.Fee),
		Currency:    doctor.Currency,
		Reference:   txnRef,
		PatientName: req.PatientName,
		DoctorID:    doctor.ID.String(),
	})
	if err != nil {
		return nil, s.abortWithFailedTransaction(ctx, tx, txn, err)
	}

	if result.RequiresConfirmation {
		// Two-step providers settle through create-order/verify-payment,
		// never through the single-step flow.
		twoStep := fmt.Errorf("%w: %s settles through the order flow", gateway.ErrPaymentNotSuccessful, method)
		return nil, s.abortWithFailedTransaction(ctx, tx, txn, twoStep)
	}

	if result.AmountMinor != gateway.MinorUnits(doctor.Fee) || result.Currency != doctor.Currency {
		mismatch := fmt.Errorf("%w: gateway confirmed %d %s, expected %d %s",
			ErrAmountMismatch,
			result.AmountMinor, result.Currency,
			gateway.MinorUnits(doctor.Fee), doctor.Currency,
		)
		return nil, s.abortWithFailedTransaction(ctx, tx, txn, mismatch)
	}

	gatewayResponse := result.GatewayResponse
	if gatewayResponse == nil {
		gatewayResponse = map[string]any{}
	}
	if result.GatewayTransactionID != "" {
		gatewayResponse["gatewayTransactionId"] = result.GatewayTransactionID
	}

	if err := s.ledger.Transition(ctx, tx, txn, entity.TransactionCompleted, gatewayResponse); err != nil {
		return nil, err
	}

	entry := &entity.QueueEntry{
		ID:             utils.GenerateUUID(),
		DoctorID:       doctor.ID,
		PatientID:      patient.ID,
		PatientName:    req.PatientName,
		Gender:         patient.Gender,
		Reason:         req.Reason,
		Age:            req.Age,
		Location:       req.Location,
		PaymentStatus:  entity.QueuePaymentPaid,
		TransactionRef: &txnRef,
		JoinedAt:       now,
	}
	if _, err := s.repo.Queue.Append(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := s.repo.Doctor.Touch(ctx, tx, doctor.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	s.log.Info("Payment successful and appointment booked",
		zap.String("transaction_ref", txnRef),
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("patient", utils.MaskName(req.PatientName)),
		zap.Float64("amount", doctor.Fee),
		zap.Int("queue_position", queuePosition),
	)

	return &response.BookingResponse{
		TransactionRef:    txnRef,
		PatientID:         patient.ID.String(),
		DoctorName:        doctor.Name,
		Specialization:    doctor.Specialization,
		QueuePosition:     queuePosition,
		EstimatedWaitTime: utils.EstimatedWaitTime(queuePosition),
		Amount:            doctor.Fee,
		Currency:          doctor.Currency,
		AppointmentDetails: response.AppointmentDetails{
			Reason:   req.Reason,
			BookedAt: now,
		},
	}, nil
}

// abortWithFailedTransaction rolls the atomic unit back and then records
// the failed attempt in the ledger outside of it, best effort, so the
// reference stays auditable.
func (s *bookingService) abortWithFailedTransaction(ctx context.Context, tx database.Tx, txn *entity.Transaction, cause error) error {
	if err := tx.Rollback(ctx); err != nil {
		s.log.Error("Failed to roll back booking", zap.Error(err))
	}

	failed := *txn
	failed.Status = entity.TransactionFailed
	failed.GatewayResponse = map[string]any{
		"error":     cause.Error(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Transaction.Create(ctx, s.db, &failed); err != nil {
		s.log.Error("Failed to record failed transaction",
			zap.Error(err),
			zap.String("transaction_ref", txn.TransactionRef),
		)
	}

	s.log.Warn("Payment processing failed",
		zap.Error(cause),
		zap.String("transaction_ref", txn.TransactionRef),
		zap.String("patient", utils.MaskName(txn.PatientName)),
	)

	return &PaymentError{TransactionRef: txn.TransactionRef, Err: cause}
}

func (s *bookingService) CreateOrder(ctx context.Context, doctorID string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	id, err := parseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}

	if errs := validatePatientData(req.PatientName, req.Age, req.Gender, req.Reason, req.Location); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Strings("errors", errs))
		return nil, &ValidationError{Messages: errs}
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}
	if !doctor.Active {
		return nil, fmt.Errorf("%w: %s", ErrDoctorUnavailable, doctor.Name)
	}

	provider, err := s.gateways.Provider(entity.PaymentMethodRazorpay)
	if err != nil {
		return nil, err
	}

	txnRef := utils.GenerateTransactionRef()

	gatewayCtx, cancel := context.WithTimeout(ctx, s.config.InitiateTimeout)
	defer cancel()

	result, err := provider.Initiate(gatewayCtx, &gateway.InitiateRequest{
		AmountMinor: gateway.MinorUnits(doctor.Fee),
		Currency:    doctor.Currency,
		Reference:   txnRef,
		PatientName: req.PatientName,
		DoctorID:    doctor.ID.String(),
	})
	if err != nil {
		return nil, &PaymentError{TransactionRef: txnRef, Err: err}
	}

	s.log.Info("Payment order created",
		zap.String("order_id", result.OrderID),
		zap.String("transaction_ref", txnRef),
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("patient", utils.MaskName(req.PatientName)),
	)

	// No server-side pending state is kept between the two steps; the
	// caller echoes the patient data back at verify time.
	return &response.OrderResponse{
		OrderID:        result.OrderID,
		AmountMinor:    result.AmountMinor,
		Currency:       result.Currency,
		TransactionRef: txnRef,
		RazorpayKeyID:  s.config.RazorpayKeyID,
	}, nil
}

func (s *bookingService) VerifyPayment(ctx context.Context, doctorID string, req *request.VerifyPaymentRequest) (*response.BookingResponse, error) {
	id, err := parseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}

	if errs := validatePatientData(req.PatientName, req.Age, req.Gender, req.Reason, req.Location); len(errs) > 0 {
		s.log.Warn("Verify payment validation failed", zap.Strings("errors", errs))
		return nil, &ValidationError{Messages: errs}
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}
	if !doctor.Active {
		return nil, fmt.Errorf("%w: %s", ErrDoctorUnavailable, doctor.Name)
	}

	provider, err := s.gateways.Provider(entity.PaymentMethodRazorpay)
	if err != nil {
		return nil, err
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, s.config.VerifyTimeout)
	defer cancel()

	result, err := provider.Confirm(gatewayCtx, &gateway.ConfirmRequest{
		OrderID:     req.RazorpayOrderID,
		PaymentID:   req.RazorpayPaymentID,
		Signature:   req.RazorpaySignature,
		AmountMinor: gateway.MinorUnits(doctor.Fee),
		Currency:    doctor.Currency,
	})
	if err != nil {
		// Nothing was persisted yet, so a failed verification leaves no
		// trace beyond the log.
		s.log.Warn("Payment verification failed",
			zap.Error(err),
			zap.String("transaction_ref", req.TransactionRef),
			zap.String("order_id", req.RazorpayOrderID),
		)
		return nil, &PaymentError{TransactionRef: req.TransactionRef, Err: err}
	}

	if result.AmountMinor != gateway.MinorUnits(doctor.Fee) || result.Currency != doctor.Currency {
		return nil, &PaymentError{
			TransactionRef: req.TransactionRef,
			Err: fmt.Errorf("%w: gateway confirmed %d %s, expected %d %s",
				ErrAmountMismatch,
				result.AmountMinor, result.Currency,
				gateway.MinorUnits(doctor.Fee), doctor.Currency,
			),
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin verified booking: %w", err)
	}
	defer tx.Rollback(ctx)

	// Re-check under the row lock: the doctor may have been toggled off
	// between confirm and persist.
	doctor, err = s.repo.Doctor.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}
	if !doctor.Active {
		return nil, fmt.Errorf("%w: %s", ErrDoctorUnavailable, doctor.Name)
	}

	now := time.Now()
	patient := &entity.Patient{
		ID:        utils.GenerateUUID(),
		Name:      req.PatientName,
		Age:       req.Age,
		Gender:    entity.Gender(req.Gender),
		Reason:    req.Reason,
		Location:  req.Location,
		DoctorID:  doctor.ID,
		VisitedAt: now,
	}
	if err := s.repo.Patient.Create(ctx, tx, patient); err != nil {
		return nil, err
	}

	queueLength, err := s.repo.Queue.Length(ctx, tx, doctor.ID)
	if err != nil {
		return nil, err
	}
	queuePosition := queueLength + 1

	txn := &entity.Transaction{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		PatientName:     req.PatientName,
		Amount:          doctor.Fee,
		Currency:        doctor.Currency,
		PaymentMethod:   entity.PaymentMethodRazorpay,
		Status:          entity.TransactionCompleted,
		TransactionRef:  req.TransactionRef,
		GatewayResponse: result.GatewayResponse,
		QueuePosition:   queuePosition,
	}
	if err := s.repo.Transaction.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	entry := &entity.QueueEntry{
		ID:             utils.GenerateUUID(),
		DoctorID:       doctor.ID,
		PatientID:      patient.ID,
		PatientName:    req.PatientName,
		Gender:         patient.Gender,
		Reason:         req.Reason,
		Age:            req.Age,
		Location:       req.Location,
		PaymentStatus:  entity.QueuePaymentPaid,
		TransactionRef: &txn.TransactionRef,
		JoinedAt:       now,
	}
	if _, err := s.repo.Queue.Append(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := s.repo.Doctor.Touch(ctx, tx, doctor.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit verified booking: %w", err)
	}

	s.log.Info("Payment verified and appointment booked",
		zap.String("transaction_ref", txn.TransactionRef),
		zap.String("order_id", req.RazorpayOrderID),
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("patient", utils.MaskName(req.PatientName)),
		zap.Int("queue_position", queuePosition),
	)

	return &response.BookingResponse{
		TransactionRef:    txn.TransactionRef,
		PatientID:         patient.ID.String(),
		DoctorName:        doctor.Name,
		Specialization:    doctor.Specialization,
		QueuePosition:     queuePosition,
		EstimatedWaitTime: utils.EstimatedWaitTime(queuePosition),
		Amount:            doctor.Fee,
		Currency:          doctor.Currency,
		AppointmentDetails: response.AppointmentDetails{
			Reason:   req.Reason,
			BookedAt: now,
		},
	}, nil
}

func (s *bookingService) Refund(ctx context.Context, transactionRef, reason string) (*response.RefundResponse, error) {
	txn, err := s.ledger.GetByRef(ctx, transactionRef)
	if err != nil {
		return nil, err
	}

	if txn.Status != entity.TransactionCompleted {
		return nil, fmt.Errorf("%w: transaction %s is %s, not completed",
			gateway.ErrRefundFailed, transactionRef, txn.Status)
	}

	provider, err := s.gateways.Provider(txn.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "Appointment cancelled"
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, s.config.VerifyTimeout)
	defer cancel()

	result, err := provider.Refund(gatewayCtx, &gateway.RefundRequest{
		GatewayTransactionID: txn.GatewayTransactionID(),
		AmountMinor:          gateway.MinorUnits(txn.Amount),
		Reason:               reason,
	})
	if err != nil {
		// The ledger keeps its completed status when the provider says no.
		s.log.Error("Refund failed",
			zap.Error(err),
			zap.String("transaction_ref", transactionRef),
		)
		return nil, fmt.Errorf("%w: %v", gateway.ErrRefundFailed, err)
	}

	// Merge refund metadata into the stored gateway payload; the original
	// amounts stay untouched.
	merged := make(map[string]any, len(txn.GatewayResponse)+2)
	for k, v := range txn.GatewayResponse {
		merged[k] = v
	}
	merged["refundId"] = result.RefundID
	merged["refund"] = result.GatewayResponse

	if err := s.ledger.Transition(ctx, s.db, txn, entity.TransactionRefunded, merged); err != nil {
		return nil, err
	}

	s.log.Info("Transaction refunded",
		zap.String("transaction_ref", transactionRef),
		zap.String("refund_id", result.RefundID),
		zap.Float64("amount", txn.Amount),
	)

	return &response.RefundResponse{
		TransactionRef: transactionRef,
		RefundID:       result.RefundID,
		Amount:         gateway.MajorUnits(result.AmountMinor),
		Status:         result.Status,
	}, nil
}

func (s *bookingService) Next(ctx context.Context, doctorID string) (*response.QueueEntryResponse, error) {
	id, err := parseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}

	// Cheap empty check before taking the row lock. The peek is
	// advisory; DequeueFront under the lock stays authoritative.
	front, err := s.repo.Queue.PeekFront(ctx, id)
	if err != nil {
		return nil, err
	}
	if front == nil {
		doctor, err := s.repo.Doctor.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
		}
		return nil, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin dequeue: %w", err)
	}
	defer tx.Rollback(ctx)

	// Same lock as bookings, so a dequeue cannot race an append.
	doctor, err := s.repo.Doctor.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}

	entry, err := s.repo.Queue.DequeueFront(ctx, tx, doctor.ID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// Empty queue is a normal outcome
		return nil, tx.Commit(ctx)
	}

	if err := s.repo.Doctor.Touch(ctx, tx, doctor.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit dequeue: %w", err)
	}

	s.log.Info("Patient called from queue",
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("patient", utils.MaskName(entry.PatientName)),
	)

	resp := response.QueueEntryToResponse(entry, 1)
	return &resp, nil
}
