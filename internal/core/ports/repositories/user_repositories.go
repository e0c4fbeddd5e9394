package repositories

import (
	"context"
	"time"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence for application users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error

	// UpdateRefreshToken stores the hash and expiry of the user's refresh
	// token; empty hash clears it.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error
}
