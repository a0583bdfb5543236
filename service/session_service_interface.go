package service

import (
	"context"

	"princegaming/models"
)

// SessionServiceInterface defines the contract for the authenticated session
type SessionServiceInterface interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
	Token() (string, bool)
	User() (*models.User, bool)
	IsAuthenticated() bool
}
