package roster

import "errors"

var (
	ErrInvalidTransition  = errors.New("operation not allowed in current editor state")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrUnknownField       = errors.New("unknown draft field")
	ErrUnknownDay         = errors.New("unknown weekday")
	ErrUnknownSlot        = errors.New("unknown OPD slot")
	ErrNoProfile          = errors.New("no hospital profile loaded")
	ErrNotHospital        = errors.New("profile is not a hospital profile")
)

// GenericSubmissionMessage is shown when the service gives no reason
const GenericSubmissionMessage = "failed to add doctor, please try again"

// Reasoner is implemented by service errors that carry a user-facing reason
type Reasoner interface {
	Reason() string
}

// Reason returns the user-facing reason carried by err, or "" when there is none
func Reason(err error) string {
	var r Reasoner
	if errors.As(err, &r) {
		return r.Reason()
	}
	return ""
}

// SubmissionError is a failed append. The draft is kept so the user can retry.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
