package roster

import (
	"context"

	"medsync/internal/delivery/dto"

	"github.com/google/uuid"
)

// ProfileService is the remote owner of hospital profiles
type ProfileService interface {
	GetProfile(ctx context.Context) (*dto.ProfileResponse, error)
	// AppendDoctor adds draft to the roster and returns the full updated profile
	AppendDoctor(ctx context.Context, hospitalID uuid.UUID, draft Draft) (*dto.HospitalProfileResponse, error)
}
