package usecase

import (
	"event-bookings/internal/domain/user"
	"event-bookings/internal/pkg/jwt"
)

// Identity is the caller as described by a validated access token.
type Identity struct {
	UserID string
	Role   user.Role
	Name   string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: claims.UserID, Role: role, Name: claims.Name}, nil
}
