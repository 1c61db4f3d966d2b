// FILE: internal/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// ErrorKind names the failure class a stage surfaced.
type ErrorKind string

const (
	// KindProviderUnavailable means an external collaborator was unreachable
	// or timed out. Retryable.
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	// KindInvalidResponse means a collaborator answered with a malformed or
	// incomplete payload. Retryable.
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindValidation means the extracted fields could not be normalized into
	// something classifiable. Not retryable.
	KindValidation ErrorKind = "validation_error"
)

// StageError tags a pipeline failure with the stage it happened in and the
// error kind. Callers receive either a complete result or exactly one of
// these; partial results are never returned.
type StageError struct {
	Stage string
	Kind  ErrorKind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func NewStageError(stage string, kind ErrorKind, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

// AsStageError extracts the stage tag from an error chain.
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
