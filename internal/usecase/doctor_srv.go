package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospital-booking/internal/data/entity"
	"hospital-booking/internal/data/repository"
	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/dto/response"
	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

type DoctorService interface {
	Create(ctx context.Context, req *request.CreateDoctorRequest) (*response.DoctorResponse, error)
	ListActive(ctx context.Context) ([]response.DoctorResponse, error)
	GetQueue(ctx context.Context, doctorID string) ([]response.QueueEntryResponse, error)
	QueuePosition(ctx context.Context, doctorID, patientName string) (*response.QueuePositionResponse, error)
	ToggleActive(ctx context.Context, doctorID string) (*response.DoctorResponse, error)
	UpdateFee(ctx context.Context, doctorID string, req *request.UpdateFeeRequest) (*response.DoctorResponse, error)
}

type doctorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDoctorService(repo *repository.Repository, log *zap.Logger) DoctorService {
	return &doctorService{
		repo: repo,
		log:  log.With(zap.String("service", "doctor")),
	}
}

func (s *doctorService) Create(ctx context.Context, req *request.CreateDoctorRequest) (*response.DoctorResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	now := time.Now()
	doctor := &entity.Doctor{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Specialization: req.Specialization,
		Schedule:       req.Schedule,
		Fee:            req.Fee,
		Currency:       currency,
		Active:         true,
	}

	if err := s.repo.Doctor.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.log.Info("Doctor registered",
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("name", doctor.Name),
		zap.String("specialization", doctor.Specialization),
	)

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *doctorService) ListActive(ctx context.Context) ([]response.DoctorResponse, error) {
	doctors, err := s.repo.Doctor.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]response.DoctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		result = append(result, response.DoctorToResponse(doctor))
	}
	return result, nil
}

func (s *doctorService) GetQueue(ctx context.Context, doctorID string) ([]response.QueueEntryResponse, error) {
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

	entries, err := s.repo.Queue.List(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]response.QueueEntryResponse, 0, len(entries))
	for i, entry := range entries {
		result = append(result, response.QueueEntryToResponse(entry, i+1))
	}
	return result, nil
}

// QueuePosition looks up where a patient currently stands in a doctor's
// walk-in line, by first name match in arrival order.
func (s *doctorService) QueuePosition(ctx context.Context, doctorID, patientName string) (*response.QueuePositionResponse, error) {
	id, err := parseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(patientName) == "" {
		return nil, &ValidationError{Messages: []string{"Patient name is required"}}
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}

	position, err := s.repo.Queue.PositionOf(ctx, id, patientName)
	if err != nil {
		return nil, err
	}
	if position == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotInQueue, utils.MaskName(patientName))
	}

	return &response.QueuePositionResponse{
		PatientName:       patientName,
		Position:          position,
		EstimatedWaitTime: utils.EstimatedWaitTime(position),
	}, nil
}

func (s *doctorService) ToggleActive(ctx context.Context, doctorID string) (*response.DoctorResponse, error) {
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

	doctor.Active = !doctor.Active
	if err := s.repo.Doctor.SetActive(ctx, id, doctor.Active); err != nil {
		return nil, err
	}

	s.log.Info("Doctor availability toggled",
		zap.String("doctor_id", doctorID),
		zap.Bool("active", doctor.Active),
	)

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *doctorService) UpdateFee(ctx context.Context, doctorID string, req *request.UpdateFeeRequest) (*response.DoctorResponse, error) {
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

	currency := req.Currency
	if currency == "" {
		currency = doctor.Currency
	}

	if err := s.repo.Doctor.UpdateFee(ctx, id, req.Fee, currency); err != nil {
		return nil, err
	}

	doctor.Fee = req.Fee
	doctor.Currency = currency

	s.log.Info("Doctor fee updated",
		zap.String("doctor_id", doctorID),
		zap.Float64("fee", req.Fee),
		zap.String("currency", currency),
	)

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}
