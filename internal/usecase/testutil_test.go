package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hospital-booking/internal/data/entity"
	"hospital-booking/internal/data/repository"
	"hospital-booking/internal/gateway"
	"hospital-booking/pkg/database"
	"hospital-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// memStore is the durable state behind the fake repositories. Writes done
// through a fakeTx stay pending until Commit, so the tests can observe
// what a rollback leaves behind.
type memStore struct {
	mu       sync.Mutex
	doctors  map[uuid.UUID]*entity.Doctor
	patients map[uuid.UUID]*entity.Patient
	queues   map[uuid.UUID][]*entity.QueueEntry
	txns     map[string]*entity.Transaction
	hospital *entity.Hospital
}

func newMemStore() *memStore {
	return &memStore{
		doctors:  make(map[uuid.UUID]*entity.Doctor),
		patients: make(map[uuid.UUID]*entity.Patient),
		queues:   make(map[uuid.UUID][]*entity.QueueEntry),
		txns:     make(map[string]*entity.Transaction),
	}
}

type fakeDB struct {
	store *memStore
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	return &fakeTx{store: db.store}, nil
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close()                         {}

// fakeTx buffers the mutations of one atomic unit.
type fakeTx struct {
	store   *memStore
	pending []func(*memStore)
	done    bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for _, apply := range tx.pending {
		apply(tx.store)
	}
	tx.pending = nil
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	tx.pending = nil
	return nil
}

// stage applies fn at commit when q is a transaction, immediately
// otherwise.
func stage(q database.Querier, store *memStore, fn func(*memStore)) {
	if tx, ok := q.(*fakeTx); ok {
		tx.pending = append(tx.pending, fn)
		return
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	fn(store)
}

type fakeDoctorRepo struct{ store *memStore }

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *doctor
	r.store.doctors[doctor.ID] = &copied
	return nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	doctor, ok := r.store.doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *doctor
	return &copied, nil
}

func (r *fakeDoctorRepo) FindAllActive(ctx context.Context) ([]*entity.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Doctor
	for _, doctor := range r.store.doctors {
		if doctor.Active {
			copied := *doctor
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeDoctorRepo) FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Doctor, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeDoctorRepo) Touch(ctx context.Context, q database.Querier, id uuid.UUID) error {
	stage(q, r.store, func(s *memStore) {
		if doctor, ok := s.doctors[id]; ok {
			doctor.UpdatedAt = time.Now()
		}
	})
	return nil
}

func (r *fakeDoctorRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if doctor, ok := r.store.doctors[id]; ok {
		doctor.Active = active
	}
	return nil
}

func (r *fakeDoctorRepo) UpdateFee(ctx context.Context, id uuid.UUID, fee float64, currency string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if doctor, ok := r.store.doctors[id]; ok {
		doctor.Fee = fee
		doctor.Currency = currency
	}
	return nil
}

type fakePatientRepo struct{ store *memStore }

func (r *fakePatientRepo) Create(ctx context.Context, q database.Querier, patient *entity.Patient) error {
	copied := *patient
	stage(q, r.store, func(s *memStore) {
		s.patients[copied.ID] = &copied
	})
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	patient, ok := r.store.patients[id]
	if !ok {
		return nil, nil
	}
	copied := *patient
	return &copied, nil
}

type fakeQueueRepo struct{ store *memStore }

func (r *fakeQueueRepo) Append(ctx context.Context, q database.Querier, entry *entity.QueueEntry) (int, error) {
	copied := *entry
	stage(q, r.store, func(s *memStore) {
		s.queues[copied.DoctorID] = append(s.queues[copied.DoctorID], &copied)
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.queues[entry.DoctorID]) + 1, nil
}

func (r *fakeQueueRepo) Length(ctx context.Context, q database.Querier, doctorID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.queues[doctorID]), nil
}

func (r *fakeQueueRepo) List(ctx context.Context, doctorID uuid.UUID) ([]*entity.QueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entries := r.store.queues[doctorID]
	result := make([]*entity.QueueEntry, len(entries))
	for i, entry := range entries {
		copied := *entry
		result[i] = &copied
	}
	return result, nil
}

func (r *fakeQueueRepo) PeekFront(ctx context.Context, doctorID uuid.UUID) (*entity.QueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entries := r.store.queues[doctorID]
	if len(entries) == 0 {
		return nil, nil
	}
	copied := *entries[0]
	return &copied, nil
}

func (r *fakeQueueRepo) DequeueFront(ctx context.Context, q database.Querier, doctorID uuid.UUID) (*entity.QueueEntry, error) {
	r.store.mu.Lock()
	entries := r.store.queues[doctorID]
	if len(entries) == 0 {
		r.store.mu.Unlock()
		return nil, nil
	}
	copied := *entries[0]
	r.store.mu.Unlock()

	stage(q, r.store, func(s *memStore) {
		remaining := s.queues[doctorID]
		if len(remaining) > 0 {
			s.queues[doctorID] = remaining[1:]
		}
	})
	return &copied, nil
}

func (r *fakeQueueRepo) PositionOf(ctx context.Context, doctorID uuid.UUID, patientName string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, entry := range r.store.queues[doctorID] {
		if entry.PatientName == patientName {
			return i + 1, nil
		}
	}
	return 0, nil
}

type fakeTransactionRepo struct{ store *memStore }

func (r *fakeTransactionRepo) Create(ctx context.Context, q database.Querier, txn *entity.Transaction) error {
	copied := *txn
	stage(q, r.store, func(s *memStore) {
		s.txns[copied.TransactionRef] = &copied
	})
	return nil
}

func (r *fakeTransactionRepo) FindByRef(ctx context.Context, ref string) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	txn, ok := r.store.txns[ref]
	if !ok {
		return nil, nil
	}
	copied := *txn
	return &copied, nil
}

func (r *fakeTransactionRepo) UpdateStatus(ctx context.Context, q database.Querier, ref string, status entity.TransactionStatus, gatewayResponse map[string]any) error {
	stage(q, r.store, func(s *memStore) {
		txn, ok := s.txns[ref]
		if !ok {
			return
		}
		txn.Status = status
		if gatewayResponse != nil {
			txn.GatewayResponse = gatewayResponse
		}
		txn.UpdatedAt = time.Now()
	})
	return nil
}

func (r *fakeTransactionRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Transaction
	for _, txn := range r.store.txns {
		if txn.DoctorID != doctorID {
			continue
		}
		if status != nil && txn.Status != *status {
			continue
		}
		copied := *txn
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeTransactionRepo) CountByDoctor(ctx context.Context, doctorID uuid.UUID, status *entity.TransactionStatus) (int64, error) {
	txns, _ := r.ListByDoctor(ctx, doctorID, status, 0, 0)
	return int64(len(txns)), nil
}

func (r *fakeTransactionRepo) ListAll(ctx context.Context, status *entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Transaction
	for _, txn := range r.store.txns {
		if status != nil && txn.Status != *status {
			continue
		}
		copied := *txn
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeTransactionRepo) CountAll(ctx context.Context, status *entity.TransactionStatus) (int64, error) {
	txns, _ := r.ListAll(ctx, status, 0, 0)
	return int64(len(txns)), nil
}

type fakeHospitalRepo struct{ store *memStore }

func (r *fakeHospitalRepo) Save(ctx context.Context, hospital *entity.Hospital) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *hospital
	r.store.hospital = &copied
	return nil
}

func (r *fakeHospitalRepo) Get(ctx context.Context) (*entity.Hospital, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.hospital == nil {
		return nil, nil
	}
	copied := *r.store.hospital
	return &copied, nil
}

type testEnv struct {
	store  *memStore
	db     *fakeDB
	repo   *repository.Repository
	ledger TransactionService
	svc    BookingService
}

func newTestEnv(mockSuccessRate float64) *testEnv {
	cfg := utils.GatewayConfig{
		MockSuccessRate: mockSuccessRate,
		MockDelay:       0,
		InitiateTimeout: time.Second,
		VerifyTimeout:   time.Second,
		RazorpayKeyID:   "rzp_test_key",
	}
	return newTestEnvWithGateways(gateway.NewRegistry(cfg, zap.NewNop()), cfg)
}

// newTestEnvWithGateways wires the booking service against an arbitrary
// provider registry, so tests can script gateway behaviour per call.
func newTestEnvWithGateways(gateways ProviderRegistry, cfg utils.GatewayConfig) *testEnv {
	store := newMemStore()
	db := &fakeDB{store: store}
	repo := &repository.Repository{
		Doctor:      &fakeDoctorRepo{store: store},
		Patient:     &fakePatientRepo{store: store},
		Queue:       &fakeQueueRepo{store: store},
		Transaction: &fakeTransactionRepo{store: store},
		Hospital:    &fakeHospitalRepo{store: store},
	}

	log := zap.NewNop()
	ledger := NewTransactionService(repo, log)

	return &testEnv{
		store:  store,
		db:     db,
		repo:   repo,
		ledger: ledger,
		svc:    NewBookingService(db, repo, ledger, gateways, cfg, log),
	}
}

// scriptedProvider answers each gateway call with a canned closure. A nil
// closure means the test never expected that call.
type scriptedProvider struct {
	initiate func(ctx context.Context, req *gateway.InitiateRequest) (*gateway.InitiateResult, error)
	confirm  func(ctx context.Context, req *gateway.ConfirmRequest) (*gateway.ConfirmResult, error)
	refund   func(ctx context.Context, req *gateway.RefundRequest) (*gateway.RefundResult, error)
}

func (p *scriptedProvider) Initiate(ctx context.Context, req *gateway.InitiateRequest) (*gateway.InitiateResult, error) {
	if p.initiate == nil {
		return nil, errors.New("initiate not scripted")
	}
	return p.initiate(ctx, req)
}

func (p *scriptedProvider) Confirm(ctx context.Context, req *gateway.ConfirmRequest) (*gateway.ConfirmResult, error) {
	if p.confirm == nil {
		return nil, errors.New("confirm not scripted")
	}
	return p.confirm(ctx, req)
}

func (p *scriptedProvider) Refund(ctx context.Context, req *gateway.RefundRequest) (*gateway.RefundResult, error) {
	if p.refund == nil {
		return nil, errors.New("refund not scripted")
	}
	return p.refund(ctx, req)
}

type scriptedRegistry struct {
	providers map[entity.PaymentMethod]gateway.Provider
}

func (r *scriptedRegistry) Provider(method entity.PaymentMethod) (gateway.Provider, error) {
	provider, ok := r.providers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", gateway.ErrUnsupportedProvider, method)
	}
	return provider, nil
}

func (env *testEnv) seedDoctor(fee float64, active bool) *entity.Doctor {
	now := time.Now()
	doctor := &entity.Doctor{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           "Dr Asha Rao",
		Specialization: "General Medicine",
		Fee:            fee,
		Currency:       "INR",
		Active:         active,
	}
	env.store.mu.Lock()
	env.store.doctors[doctor.ID] = doctor
	env.store.mu.Unlock()
	return doctor
}
