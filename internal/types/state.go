package types

// Enum values for the submission state machine
type SubmissionState string

const (
	StateIdle                 SubmissionState = "IDLE"
	StateSubmitting           SubmissionState = "SUBMITTING"
	StateAwaitingConfirmation SubmissionState = "AWAITING_CONFIRMATION"
	StateSucceeded            SubmissionState = "SUCCEEDED"
	StateAmbiguousFailure     SubmissionState = "AMBIGUOUS_FAILURE"
	StateFailed               SubmissionState = "FAILED"
)

func (s SubmissionState) String() string {
	return string(s)
}

// Terminal reports whether the state releases the single-flight slot.
func (s SubmissionState) Terminal() bool {
	switch s {
	case StateSucceeded, StateAmbiguousFailure, StateFailed:
		return true
	default:
		return false
	}
}
