package usecase

import (
	"context"
	"errors"

	"medsync/internal/converter"
	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
	"medsync/internal/domain/repository"
	"medsync/internal/infrastructure/cache"
	"medsync/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrHospitalNotFound     = errors.New("hospital not found")
	ErrForeignRoster        = errors.New("cannot modify another hospital's roster")
	ErrDepartmentNotOffered = errors.New("department not offered by this hospital")
	ErrDepartmentAtCapacity = errors.New("department already staffed at capacity")
	ErrRosterConflict       = errors.New("roster changed concurrently, please retry")
)

// ProfileCache stores profile snapshots between requests. Set only succeeds while
// the profile is still at the version the snapshot was read under.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	Version(ctx context.Context, userID uuid.UUID) (int64, error)
	Set(ctx context.Context, userID uuid.UUID, version int64, profile *dto.ProfileResponse) error
	Invalidate(ctx context.Context, userID uuid.UUID) (int64, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	AppendDoctor(ctx context.Context, userID uuid.UUID, req *dto.AppendDoctorRequest) (*dto.HospitalProfileResponse, error)
	ListDoctors(ctx context.Context, userID uuid.UUID) (*dto.DoctorListResponse, error)
}

// ProfileRepositories groups the repositories a profile snapshot is built from
type ProfileRepositories struct {
	Users        repository.UserRepository
	Hospitals    repository.HospitalProfileRepository
	Patients     repository.PatientProfileRepository
	Doctors      repository.DoctorRepository
	Appointments repository.AppointmentRepository
}

type profileUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	repos                   ProfileRepositories
	cache                   ProfileCache
	auditService            service.AuditService
	metrics                 *service.MetricsService
	maxDoctorsPerDepartment int
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repos ProfileRepositories,
	cache ProfileCache,
	auditService service.AuditService,
	metrics *service.MetricsService,
	maxDoctorsPerDepartment int,
) ProfileUsecase {
	return &profileUsecase{
		db:                      db,
		log:                     log,
		repos:                   repos,
		cache:                   cache,
		auditService:            auditService,
		metrics:                 metrics,
		maxDoctorsPerDepartment: maxDoctorsPerDepartment,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	cached, err := u.cache.Get(ctx, userID)
	if err == nil {
		u.metrics.ObserveCacheLookup(true)
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		u.log.Warnf("Failed to read profile cache: %+v", err)
	}
	u.metrics.ObserveCacheLookup(false)

	// Read the version before the database so a concurrent change makes the snapshot stale
	version, versionErr := u.cache.Version(ctx, userID)
	if versionErr != nil {
		u.log.Warnf("Failed to read profile cache version: %+v", versionErr)
	}

	user, err := u.repos.Users.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var profile *dto.ProfileResponse
	switch user.RoleID {
	case entity.RoleIDHospital:
		hospital, err := u.loadHospital(ctx, u.db, userID)
		if err != nil {
			return nil, err
		}
		profile = &dto.ProfileResponse{Kind: dto.ProfileKindHospital, Hospital: hospital}
	case entity.RoleIDPatient:
		patient, err := u.loadPatient(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile = &dto.ProfileResponse{Kind: dto.ProfileKindPatient, Patient: patient}
	default:
		u.log.Warnf("Failed to build profile: unknown role %d for user %s", user.RoleID, userID)
		return nil, ErrProfileNotFound
	}

	if versionErr == nil {
		u.storeSnapshot(ctx, userID, version, profile)
	}

	return profile, nil
}

func (u *profileUsecase) storeSnapshot(ctx context.Context, userID uuid.UUID, version int64, profile *dto.ProfileResponse) {
	err := u.cache.Set(ctx, userID, version, profile)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrStaleSnapshot):
		u.log.Debugf("Skipped stale profile snapshot for user %s", userID)
	default:
		u.log.Warnf("Failed to write profile cache: %+v", err)
	}
}

// loadHospital builds the authoritative hospital snapshot, roster in insertion order
func (u *profileUsecase) loadHospital(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*dto.HospitalProfileResponse, error) {
	hospital, err := u.repos.Hospitals.FindByUserID(ctx, db, userID)
	if err != nil {
		u.log.Warnf("Failed to find hospital profile: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	doctors, err := u.repos.Doctors.FindByHospitalID(ctx, db, userID)
	if err != nil {
		u.log.Warnf("Failed to find hospital doctors: %+v", err)
		return nil, err
	}
	hospital.Doctors = doctors

	appointments, err := u.repos.Appointments.FindByHospitalID(ctx, db, userID)
	if err != nil {
		u.log.Warnf("Failed to find hospital appointments: %+v", err)
		return nil, err
	}
	hospital.Appointments = appointments

	return converter.HospitalProfileToResponse(hospital), nil
}

func (u *profileUsecase) loadPatient(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error) {
	patient, err := u.repos.Patients.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrProfileNotFound
	}

	appointments, err := u.repos.Appointments.FindByPatientID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient appointments: %+v", err)
		return nil, err
	}
	patient.Appointments = appointments

	return converter.PatientProfileToResponse(patient), nil
}
