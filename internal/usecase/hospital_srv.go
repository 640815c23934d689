package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-booking/internal/data/entity"
	"hospital-booking/internal/data/repository"
	"hospital-booking/internal/dto/request"
	"hospital-booking/internal/dto/response"
	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

type HospitalService interface {
	Register(ctx context.Context, req *request.RegisterHospitalRequest) (*response.HospitalInfoResponse, error)
	Info(ctx context.Context) (*response.HospitalInfoResponse, error)
}

type hospitalService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHospitalService(repo *repository.Repository, log *zap.Logger) HospitalService {
	return &hospitalService{
		repo: repo,
		log:  log.With(zap.String("service", "hospital")),
	}
}

func (s *hospitalService) Register(ctx context.Context, req *request.RegisterHospitalRequest) (*response.HospitalInfoResponse, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	hospital := &entity.Hospital{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Location:     req.Location,
		Contact:      req.Contact,
		Username:     req.Username,
		PasswordHash: hashed,
	}

	if err := s.repo.Hospital.Save(ctx, hospital); err != nil {
		return nil, err
	}

	s.log.Info("Hospital profile registered", zap.String("name", hospital.Name))

	return &response.HospitalInfoResponse{
		Name:     hospital.Name,
		Location: hospital.Location,
		Contact:  hospital.Contact,
	}, nil
}

func (s *hospitalService) Info(ctx context.Context) (*response.HospitalInfoResponse, error) {
	hospital, err := s.repo.Hospital.Get(ctx)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotRegistered
	}

	return &response.HospitalInfoResponse{
		Name:     hospital.Name,
		Location: hospital.Location,
		Contact:  hospital.Contact,
	}, nil
}
