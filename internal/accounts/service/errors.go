package service

import (
	"errors"
	"maps"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInactiveAccount    = errors.New("inactive_account")
	ErrExpiredToken       = errors.New("expired_token")
	ErrRevokedToken       = errors.New("revoked_token")
	ErrMalformedToken     = errors.New("malformed_token")
)

// ValidationError carries field scoped messages so a client can map each
// failure back to the form input that caused it.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation_failure: " + strings.Join(slices.Sorted(maps.Keys(e.Fields)), ", ")
}

// Add appends msg to field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

func fieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

// fromValidation converts ozzo-validation field errors. Anything else, such
// as a validation.InternalError, is returned unchanged.
func fromValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	ve := &ValidationError{}
	for field, ferr := range errs {
		if ferr != nil {
			ve.Add(field, ferr.Error())
		}
	}
	if ve.empty() {
		return nil
	}
	return ve
}
