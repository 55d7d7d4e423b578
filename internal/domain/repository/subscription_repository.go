package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

// SubscriptionRepository stores subscription edges. (subscriber, channel) is unique at the store level.
type SubscriptionRepository interface {
	// Insert returns ErrDuplicate when the edge already exists.
	Insert(ctx context.Context, s *entity.Subscription) error
	Delete(ctx context.Context, subscriber, channel string) (bool, error)
	CountByChannel(ctx context.Context, channel string) (int64, error)
}
