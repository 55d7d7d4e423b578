package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByUsernameOrEmail reports whether any user holds the username or the email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Update writes the mutable profile fields: fullName, email, bio, avatar, coverImage.
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshToken(ctx context.Context, id string) error
	AppendWatchHistory(ctx context.Context, id, videoID string) error
}
