package activities

import (
	"errors"
	"strings"

	"dataprep/internal/util"

	"go.temporal.io/sdk/temporal"
)

const (
	ErrTypeInputNotFound = "InputNotFound"
	ErrTypeOutput        = "OutputFailed"
)

// batchError turns the fatal sentinels into non-retryable application errors
// so Temporal neither retries them nor loses their type across the wire.
func batchError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, util.ErrInputNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInputNotFound, err)
	case errors.Is(err, util.ErrOutput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeOutput, err)
	default:
		return err
	}
}

func IsInputNotFound(err error) bool {
	return matches(err, util.ErrInputNotFound, ErrTypeInputNotFound)
}

func IsOutputFailure(err error) bool {
	return matches(err, util.ErrOutput, ErrTypeOutput)
}

func matches(err, sentinel error, errType string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sentinel) {
		return true
	}
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == errType {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), sentinel.Error())
}

// ErrorMessage strips Temporal activity wrapping and returns the innermost
// application message when there is one.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}
