package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByVideo removes every comment of a video and returns the removed IDs.
	DeleteByVideo(ctx context.Context, videoID string) ([]string, error)
}
