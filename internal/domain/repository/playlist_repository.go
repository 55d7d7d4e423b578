package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

type PlaylistRepository interface {
	Create(ctx context.Context, p *entity.Playlist) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, owner string) ([]entity.Playlist, error)
	// Update writes name and description.
	Update(ctx context.Context, p *entity.Playlist) error
	Delete(ctx context.Context, id string) error
	// AddVideo appends the reference; duplicates are not filtered.
	AddVideo(ctx context.Context, playlistID, videoID string) (*entity.Playlist, error)
	// RemoveVideo drops every occurrence of the reference.
	RemoveVideo(ctx context.Context, playlistID, videoID string) (*entity.Playlist, error)
}
