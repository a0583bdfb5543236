package client

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureClass groups transport failures that share one user-facing message
type FailureClass int

const (
	ClassOther FailureClass = iota
	ClassUnauthorized
	ClassNotFound
	ClassServer
	ClassConnection
)

func (c FailureClass) String() string {
	switch c {
	case ClassUnauthorized:
		return "unauthorized"
	case ClassNotFound:
		return "not_found"
	case ClassServer:
		return "server_error"
	case ClassConnection:
		return "connection_refused"
	default:
		return "other"
	}
}

var classMessages = map[FailureClass]string{
	ClassUnauthorized: "No autorizado. Por favor, inicia sesión nuevamente.",
	ClassNotFound:     "El recurso solicitado no existe.",
	ClassServer:       "Error interno del servidor. Por favor, contacta al administrador.",
	ClassConnection:   "No se puede conectar al servidor. Verifica que el backend esté ejecutándose.",
	ClassOther:        "Error en el servidor. Por favor, intenta más tarde.",
}

// classify maps an HTTP status to its failure class. Status 0 means no response was received.
func classify(status int) FailureClass {
	switch {
	case status == 0:
		return ClassConnection
	case status == http.StatusUnauthorized:
		return ClassUnauthorized
	case status == http.StatusNotFound:
		return ClassNotFound
	case status >= http.StatusInternalServerError:
		return ClassServer
	default:
		return ClassOther
	}
}

// TransportError is a network failure or a non-2xx response
type TransportError struct {
	Method string
	Path   string
	Status int
	Class  FailureClass
	Err    error
}

func newTransportError(method, path string, status int, err error) *TransportError {
	return &TransportError{Method: method, Path: path, Status: status, Class: classify(status), Err: err}
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed (%s, status %d): %v", e.Method, e.Path, e.Class, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s failed (%s, status %d)", e.Method, e.Path, e.Class, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage is the fixed message shown for the failure class
func (e *TransportError) UserMessage() string {
	return classMessages[e.Class]
}

// APIError is a reported failure: the server answered with allOK=false
type APIError struct {
	Path    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s reported failure: %s", e.Path, e.Message)
}

// UserMessage returns the server message verbatim
func (e *APIError) UserMessage() string {
	if e.Message == "" {
		return classMessages[ClassOther]
	}
	return e.Message
}

// IsClass reports whether err is a transport failure of the given class
func IsClass(err error, class FailureClass) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Class == class
}

// GenericMessage is shown for failures that fit no other class
func GenericMessage() string {
	return classMessages[ClassOther]
}
