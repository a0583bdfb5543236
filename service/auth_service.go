package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"princegaming/client"
	"princegaming/models"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// LoginError is a failed login attempt. Message depends on the status the API answered with.
type LoginError struct {
	Status  int
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

// UserMessage lets Describe show the login message
func (e *LoginError) UserMessage() string { return e.Message }

// AuthService logs the operator in and out
type AuthService struct {
	api     AuthAPI
	session SessionServiceInterface
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

// NewAuthService creates a new AuthService
func NewAuthService(api AuthAPI, session SessionServiceInterface) *AuthService {
	return &AuthService{api: api, session: session}
}

// ValidateCredentials checks the login form before anything is sent
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return invalid("El email es requerido.")
	case !emailPattern.MatchString(email):
		return invalid("Por favor, ingresa un email válido.")
	case password == "":
		return invalid("La contraseña es requerida.")
	case len([]rune(password)) < minPasswordLength:
		return invalid("La contraseña debe tener al menos 6 caracteres.")
	}
	return nil
}

// Login validates the form, authenticates and stores the session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)

	zap.S().Infof("📥 Login: attempt for %s", email)
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		lerr := loginFailure(err)
		zap.S().Warnf("❌ Login: %s failed with status %d: %v", email, lerr.Status, err)
		return nil, lerr
	}
	if resp.Token == "" {
		return nil, &LoginError{Status: 0, Message: client.GenericMessage()}
	}

	if err := s.session.Save(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	zap.S().Infof("✅ Login: %s signed in", email)
	user := resp.User
	return &user, nil
}

func loginFailure(err error) *LoginError {
	var te *client.TransportError
	if !errors.As(err, &te) {
		return &LoginError{Message: client.GenericMessage(), Err: err}
	}
	var msg string
	switch te.Status {
	case 401:
		msg = "Credenciales incorrectas. Por favor, verifica tu email y contraseña."
	case 404:
		msg = "Usuario no encontrado."
	case 0:
		msg = "No se puede conectar al servidor. Verifica que el backend esté ejecutándose."
	case 500:
		msg = "Error interno del servidor. Por favor, contacta al administrador."
	default:
		msg = client.GenericMessage()
	}
	return &LoginError{Status: te.Status, Message: msg, Err: err}
}

// ValidateSession checks the stored token with the API. Any failure, or an
// answer without a user, ends the session.
func (s *AuthService) ValidateSession(ctx context.Context) bool {
	if !s.session.IsAuthenticated() {
		return false
	}
	resp, err := s.api.Verify(ctx)
	if err != nil || resp == nil || resp.User == nil {
		if err != nil {
			zap.S().Warnf("⚠️  ValidateSession: token rejected: %v", err)
		} else {
			zap.S().Warnf("⚠️  ValidateSession: verify returned no user")
		}
		if lerr := s.Logout(ctx); lerr != nil {
			zap.S().Errorf("❌ ValidateSession: %v", lerr)
		}
		return false
	}

	token, _ := s.session.Token()
	if err := s.session.Save(ctx, token, *resp.User); err != nil {
		zap.S().Warnf("⚠️  ValidateSession: could not refresh user: %v", err)
	}
	return true
}

// Logout clears the session, whatever its prior state
func (s *AuthService) Logout(ctx context.Context) error {
	zap.S().Infof("👋 Logout")
	return s.session.Clear(ctx)
}
