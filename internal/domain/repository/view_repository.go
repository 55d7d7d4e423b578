package repository

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

// ViewRepository composes denormalized read models by joining across collections.
// Single-object views return ErrNotFound on an empty match; list views return an empty slice.
type ViewRepository interface {
	ChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error)
	// WatchHistory returns ErrNotFound only when the user itself does not exist.
	WatchHistory(ctx context.Context, userID string) ([]entity.VideoCard, error)
	VideoDetail(ctx context.Context, videoID string) (*entity.VideoDetail, error)
	PlaylistDetail(ctx context.Context, playlistID string) (*entity.PlaylistDetail, error)
	VideoComments(ctx context.Context, videoID string, page, limit int) ([]entity.CommentView, error)
	LikedVideos(ctx context.Context, userID string) ([]entity.LikedVideo, error)
	SubscribedChannels(ctx context.Context, userID string) ([]entity.SubscribedChannel, error)
}
