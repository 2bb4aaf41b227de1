package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
	"medsync/internal/infrastructure/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[id], nil
}

type fakeHospitalRepo struct {
	profile *entity.HospitalProfile
	err     error
	locks   int
}

func (r *fakeHospitalRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.HospitalProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.profile == nil || r.profile.UserID != userID {
		return nil, nil
	}
	copied := *r.profile
	return &copied, nil
}

func (r *fakeHospitalRepo) LockByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.HospitalProfile, error) {
	r.locks++
	return r.FindByUserID(ctx, db, userID)
}

type fakePatientRepo struct {
	profile *entity.PatientProfile
}

func (r *fakePatientRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if r.profile == nil || r.profile.UserID != userID {
		return nil, nil
	}
	copied := *r.profile
	return &copied, nil
}

type fakeDoctorRepo struct {
	mu        sync.Mutex
	doctors   []entity.Doctor
	createErr error
	findErr   error
	// afterFind runs once after the next roster read returns its rows
	afterFind func()
}

func (r *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	r.doctors = append(r.doctors, *doctor)
	return nil
}

func (r *fakeDoctorRepo) FindByHospitalID(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) ([]entity.Doctor, error) {
	r.mu.Lock()
	if r.findErr != nil {
		r.mu.Unlock()
		return nil, r.findErr
	}
	var out []entity.Doctor
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID {
			out = append(out, d)
		}
	}
	hook := r.afterFind
	r.afterFind = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *fakeDoctorRepo) CountByDepartment(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID, department string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID && d.Department == department {
			n++
		}
	}
	return n, nil
}

func (r *fakeDoctorRepo) NextPosition(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := 1
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID && d.Position >= next {
			next = d.Position + 1
		}
	}
	return next, nil
}

type fakeAppointmentRepo struct {
	appointments []entity.Appointment
}

func (r *fakeAppointmentRepo) FindByHospitalID(ctx context.Context, db *gorm.DB, hospitalID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.HospitalID == hospitalID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
	err  error
}

func (r *fakeAuditRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

type fakeProfileCache struct {
	store       map[uuid.UUID]*dto.ProfileResponse
	versions    map[uuid.UUID]int64
	getErr      error
	invalidated []uuid.UUID
	stale       int
}

func (c *fakeProfileCache) Get(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.store[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (c *fakeProfileCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.versions[userID], nil
}

func (c *fakeProfileCache) Set(ctx context.Context, userID uuid.UUID, version int64, profile *dto.ProfileResponse) error {
	if c.versions[userID] != version {
		c.stale++
		return cache.ErrStaleSnapshot
	}
	if c.store == nil {
		c.store = make(map[uuid.UUID]*dto.ProfileResponse)
	}
	c.store[userID] = profile
	return nil
}

func (c *fakeProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) (int64, error) {
	if c.versions == nil {
		c.versions = make(map[uuid.UUID]int64)
	}
	c.versions[userID]++
	c.invalidated = append(c.invalidated, userID)
	delete(c.store, userID)
	return c.versions[userID], nil
}

type fakeTokenStore struct {
	saved   map[string]time.Duration
	revoked []string
}

func (s *fakeTokenStore) Save(ctx context.Context, kind string, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if s.saved == nil {
		s.saved = make(map[string]time.Duration)
	}
	s.saved[kind+":"+userID.String()+":"+tokenID] = ttl
	return nil
}

func (s *fakeTokenStore) Exists(ctx context.Context, kind string, userID uuid.UUID, tokenID string) (bool, error) {
	_, ok := s.saved[kind+":"+userID.String()+":"+tokenID]
	return ok, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, kind string, userID uuid.UUID, tokenID string) error {
	key := kind + ":" + userID.String() + ":" + tokenID
	s.revoked = append(s.revoked, key)
	delete(s.saved, key)
	return nil
}
