package types

import (
	"fmt"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// InternalServiceError is the fallback code for unclassified failures.
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	// WalletUnavailable means no wallet capability could be reached. Fatal
	// for the session, there is no retry path.
	WalletUnavailable ErrorCode = "WALLET_UNAVAILABLE"
	// InvalidAmount is a local validation failure, rejected before any
	// submission is attempted.
	InvalidAmount ErrorCode = "INVALID_AMOUNT"
	// SubmissionRejected is a definite remote failure.
	SubmissionRejected ErrorCode = "SUBMISSION_REJECTED"
	// AmbiguousFailure means the transport reported a fault consistent with
	// the operation having already applied. Neither success nor failure.
	AmbiguousFailure ErrorCode = "AMBIGUOUS_FAILURE"
	// FetchFailed covers reconciliation and history pull failures.
	FetchFailed ErrorCode = "FETCH_FAILED"
	// RecordNotFound means the stake record does not exist on the ledger yet.
	RecordNotFound ErrorCode = "RECORD_NOT_FOUND"
	// OperationInFlight means another operation holds the single-flight slot.
	OperationInFlight ErrorCode = "OPERATION_IN_FLIGHT"
)

// Error wraps an underlying error with a classification code and the HTTP
// status the presentation layer should map it to.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, fmt.Errorf("%s", msg))
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

// IsRecordNotFound reports whether err is the recoverable "record does not
// exist yet" condition.
func IsRecordNotFound(err *Error) bool {
	return err != nil && err.ErrorCode == RecordNotFound
}
