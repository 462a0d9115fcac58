package repository

import (
	"context"

	"github.com/stayhub/rental-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches; an error always means the
// store itself failed.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
