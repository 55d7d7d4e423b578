package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	// Update writes title, description, thumbnail and isPublished.
	Update(ctx context.Context, v *entity.Video) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
