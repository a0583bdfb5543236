package service

import (
	"context"

	"princegaming/models"
)

// AuthAPI is the part of the inventory API used for authentication
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Verify(ctx context.Context) (*models.VerifyResponse, error)
}

// AuthServiceInterface defines the contract for login and logout
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	ValidateSession(ctx context.Context) bool
	Logout(ctx context.Context) error
}
