package usecase

import (
	"context"
	"strings"

	"medsync/internal/converter"
	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
	"medsync/internal/service"

	"github.com/google/uuid"
)

const auditSavePoint = "audit_log"

// AppendDoctor adds one doctor at the end of the hospital roster and returns the
// full updated profile. Nothing is written unless every rule passes.
func (u *profileUsecase) AppendDoctor(ctx context.Context, userID uuid.UUID, req *dto.AppendDoctorRequest) (*dto.HospitalProfileResponse, error) {
	if req.ID != userID {
		u.metrics.ObserveDoctorAppend(service.AppendOutcomeRejected)
		return nil, ErrForeignRoster
	}

	doctor, profile, err := u.appendDoctor(ctx, userID, &req.Doctor)
	if err != nil {
		outcome := service.AppendOutcomeError
		switch err {
		case ErrHospitalNotFound, ErrDepartmentNotOffered, ErrDepartmentAtCapacity, ErrRosterConflict:
			outcome = service.AppendOutcomeRejected
		}
		u.metrics.ObserveDoctorAppend(outcome)
		return nil, err
	}
	u.metrics.ObserveDoctorAppend(service.AppendOutcomeSuccess)

	version, err := u.cache.Invalidate(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to invalidate profile cache: %+v", err)
	} else {
		u.storeSnapshot(ctx, userID, version, &dto.ProfileResponse{Kind: dto.ProfileKindHospital, Hospital: profile})
	}

	u.log.Infof("Doctor %s appended to hospital %s at position %d", doctor.ID, userID, doctor.Position)
	return profile, nil
}

// appendDoctor inserts the doctor and reads the updated snapshot in one
// transaction, so a failed read leaves the roster untouched.
func (u *profileUsecase) appendDoctor(ctx context.Context, userID uuid.UUID, draft *dto.DoctorDraftRequest) (*entity.Doctor, *dto.HospitalProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Lock the hospital row so capacity checks and positions stay consistent
	hospital, err := u.repos.Hospitals.LockByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to lock hospital profile: %+v", err)
		return nil, nil, err
	}
	if hospital == nil {
		return nil, nil, ErrHospitalNotFound
	}

	department := strings.TrimSpace(draft.Department)
	if !hospital.OffersDepartment(department) {
		return nil, nil, ErrDepartmentNotOffered
	}

	if u.maxDoctorsPerDepartment > 0 {
		count, err := u.repos.Doctors.CountByDepartment(ctx, tx, userID, department)
		if err != nil {
			u.log.Warnf("Failed to count department doctors: %+v", err)
			return nil, nil, err
		}
		if count >= int64(u.maxDoctorsPerDepartment) {
			return nil, nil, ErrDepartmentAtCapacity
		}
	}

	position, err := u.repos.Doctors.NextPosition(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to compute roster position: %+v", err)
		return nil, nil, err
	}

	doctor := &entity.Doctor{
		HospitalID:  userID,
		Position:    position,
		Name:        strings.TrimSpace(draft.Name),
		Department:  department,
		Phone:       strings.TrimSpace(draft.Phone),
		OPDSchedule: draft.OPDSchedule.Normalize(),
	}
	if err := u.repos.Doctors.Create(ctx, tx, doctor); err != nil {
		if isDuplicateKeyError(err, "roster_position") {
			return nil, nil, ErrRosterConflict
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, nil, err
	}

	// A failed audit insert aborts a postgres transaction, so it runs under a savepoint
	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		u.log.Warnf("Failed to create savepoint: %+v", err)
		return nil, nil, err
	}
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionDoctorAppend, "doctor", doctor.ID.String(), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		if err := tx.RollbackTo(auditSavePoint).Error; err != nil {
			u.log.Warnf("Failed to roll back audit log: %+v", err)
			return nil, nil, err
		}
	}

	profile, err := u.loadHospital(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	return doctor, profile, nil
}

func (u *profileUsecase) ListDoctors(ctx context.Context, userID uuid.UUID) (*dto.DoctorListResponse, error) {
	doctors, err := u.repos.Doctors.FindByHospitalID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find hospital doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)
	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}
