package roster

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle state of an Editor
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// Editor composes a new doctor and appends it to a hospital roster.
//
// Closed -> Open -> Submitting -> Closed on success, or back to Open on failure
// with the draft kept intact. Only one submission can be in flight; the lock is
// released while the remote call runs so readers never block on the network.
type Editor struct {
	mu      sync.Mutex
	service ProfileService
	log     *logrus.Logger

	state   State
	draft   Draft
	message string
	profile *dto.HospitalProfileResponse
}

// NewEditor creates a closed editor over a cached hospital profile
func NewEditor(service ProfileService, profile *dto.HospitalProfileResponse, log *logrus.Logger) *Editor {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Editor{
		service: service,
		log:     log,
		state:   StateClosed,
		draft:   emptyDraft(),
		profile: profile,
	}
}

// LoadEditor fetches the current profile and returns an editor for it
func LoadEditor(ctx context.Context, service ProfileService, log *logrus.Logger) (*Editor, error) {
	profile, err := service.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Kind != dto.ProfileKindHospital || profile.Hospital == nil {
		return nil, ErrNotHospital
	}
	return NewEditor(service, profile.Hospital, log), nil
}

// Open starts a new empty draft
func (e *Editor) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.require(StateClosed); err != nil {
		return err
	}
	if e.profile == nil {
		return ErrNoProfile
	}

	e.state = StateOpen
	e.draft = emptyDraft()
	e.message = ""
	e.log.Debugf("Roster editor opened for hospital %s", e.profile.ID)
	return nil
}

// SetField replaces one scalar field of the draft
func (e *Editor) SetField(field Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.require(StateOpen); err != nil {
		return err
	}
	if err := e.draft.set(field, value); err != nil {
		return err
	}
	e.message = ""
	return nil
}

// SetDaySlot selects the OPD slot for a day. SlotUnavailable or an empty value
// clears the day.
func (e *Editor) SetDaySlot(day entity.Weekday, slot string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.require(StateOpen); err != nil {
		return err
	}
	d, ok := entity.ParseWeekday(string(day))
	if !ok {
		return ErrUnknownDay
	}

	switch {
	case entity.IsUnavailableSlot(slot):
		delete(e.draft.Schedule, d)
	case entity.IsOPDSlot(slot):
		e.draft.Schedule[d] = strings.TrimSpace(slot)
	default:
		return ErrUnknownSlot
	}
	e.message = ""
	return nil
}

// Cancel discards the draft without touching the profile
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.require(StateOpen); err != nil {
		return err
	}
	e.state = StateClosed
	e.draft = emptyDraft()
	e.message = ""
	return nil
}

// Submit validates the draft and appends it to the roster.
//
// A *ValidationError leaves the editor open without any remote call. A
// *SubmissionError leaves the editor open with the draft exactly as submitted.
// On success the cached profile is replaced by the service response.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if err := e.require(StateOpen); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := Validate(e.draft); err != nil {
		e.message = err.Error()
		e.mu.Unlock()
		e.log.Debugf("Roster draft rejected: %v", err)
		return err
	}

	e.state = StateSubmitting
	draft := e.draft.Clone()
	hospitalID := e.profile.ID
	e.mu.Unlock()

	profile, err := e.service.AppendDoctor(ctx, hospitalID, draft)
	if err == nil && profile == nil {
		err = errors.New("empty profile in append response")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		message := Reason(err)
		if message == "" {
			message = GenericSubmissionMessage
		}
		e.state = StateOpen
		e.message = message
		e.log.Warnf("Failed to append doctor to hospital %s: %+v", hospitalID, err)
		return &SubmissionError{Message: message, Err: err}
	}

	e.profile = profile
	e.draft = emptyDraft()
	e.message = ""
	e.state = StateClosed
	e.log.Infof("Doctor %q appended to hospital %s", draft.Name, hospitalID)
	return nil
}

// State returns the current state
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Busy reports whether a submission is in flight
func (e *Editor) Busy() bool {
	return e.State() == StateSubmitting
}

// Draft returns a copy of the current draft
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// ErrorMessage returns the message shown to the user, or ""
func (e *Editor) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// Profile returns the cached hospital profile. Callers must not modify it.
func (e *Editor) Profile() *dto.HospitalProfileResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile
}

func (e *Editor) require(want State) error {
	if e.state == want {
		return nil
	}
	if e.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	return ErrInvalidTransition
}
