package service

import (
	"errors"

	"princegaming/client"
)

// ValidationError is raised before any network call when input is incomplete
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// UploadError is a failure of the image staging flow
type UploadError struct {
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UploadError) Unwrap() error { return e.Err }

type userMessenger interface {
	UserMessage() string
}

// Describe turns any error returned by the services into the text shown to the operator
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var uerr *UploadError
	if errors.As(err, &uerr) {
		var m userMessenger
		if errors.As(uerr.Err, &m) {
			return m.UserMessage()
		}
		return uerr.Message
	}
	var m userMessenger
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return client.GenericMessage()
}
