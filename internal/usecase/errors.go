package usecase

import (
	"errors"
	"fmt"

	"cinema-manager/pkg/utils"
)

var (
	// ErrValidation marks malformed input: bad formats, missing fields, bad ids.
	ErrValidation = errors.New("validation failed")
	// ErrMovieUnavailable is returned when scheduling a movie hidden from programming.
	ErrMovieUnavailable = errors.New("movie is not available for scheduling")
	// ErrScreeningStarted is returned when booking a screening that already began.
	ErrScreeningStarted = errors.New("screening already started")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// ValidationError carries per-field messages for the response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
