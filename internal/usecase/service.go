package usecase

import (
	"hospital-booking/internal/data/repository"
	"hospital-booking/pkg/database"
	"hospital-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking     BookingService
	Doctor      DoctorService
	Transaction TransactionService
	Hospital    HospitalService
}

func NewService(
	db database.PgxIface,
	repo *repository.Repository,
	gateways ProviderRegistry,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	ledger := NewTransactionService(repo, log)

	return &Service{
		Booking:     NewBookingService(db, repo, ledger, gateways, config.Gateway, log),
		Doctor:      NewDoctorService(repo, log),
		Transaction: ledger,
		Hospital:    NewHospitalService(repo, log),
	}
}
