package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

// LikeRepository stores like edges. (likedBy, target) is unique at the store level.
type LikeRepository interface {
	// Insert returns ErrDuplicate when the edge already exists.
	Insert(ctx context.Context, l *entity.Like) error
	// Delete removes the edge if present and reports whether one was removed.
	Delete(ctx context.Context, likedBy string, target entity.LikeTarget) (bool, error)
	CountByTarget(ctx context.Context, target entity.LikeTarget) (int64, error)
	DeleteByTargets(ctx context.Context, targets ...entity.LikeTarget) error
}
