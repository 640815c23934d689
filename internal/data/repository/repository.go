package repository

import (
	"hospital-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Doctor      DoctorRepository
	Patient     PatientRepository
	Queue       QueueRepository
	Transaction TransactionRepository
	Hospital    HospitalRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Doctor:      NewDoctorRepository(db, log),
		Patient:     NewPatientRepository(db, log),
		Queue:       NewQueueRepository(db, log),
		Transaction: NewTransactionRepository(db, log),
		Hospital:    NewHospitalRepository(db, log),
	}
}
