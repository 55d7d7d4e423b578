package handlers

import (
	"context"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

// The handler-facing service contracts, satisfied by the application services.

type UserUseCases interface {
	Register(ctx context.Context, in application.RegisterInput) (*entity.UserProfile, error)
	Login(ctx context.Context, email, password string) (*application.LoginResult, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, token string) (*application.TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error
	CurrentUser(ctx context.Context, userID string) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.UserProfile, error)
	UpdateImages(ctx context.Context, userID string, avatar, cover *application.LocalFile) (*entity.UserProfile, error)
	ChannelProfile(ctx context.Context, viewerID, username string) (*entity.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID string) ([]entity.VideoCard, error)
}

type VideoUseCases interface {
	Publish(ctx context.Context, ownerID string, in application.PublishInput) (*entity.Video, error)
	Get(ctx context.Context, viewerID, videoID string) (*entity.VideoDetail, error)
	Update(ctx context.Context, actorID, videoID string, in application.UpdateVideoInput) (*entity.Video, error)
	Delete(ctx context.Context, actorID, videoID string) error
	TogglePublish(ctx context.Context, actorID, videoID string) (*entity.Video, error)
	Search(ctx context.Context, query string, page, limit int) (*application.SearchPage, error)
}

type CommentUseCases interface {
	Add(ctx context.Context, ownerID, videoID, content string) (*entity.Comment, error)
	List(ctx context.Context, videoID string, page, limit int) ([]entity.CommentView, error)
	Update(ctx context.Context, actorID, commentID, content string) (*entity.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
}

type LikeUseCases interface {
	ToggleVideoLike(ctx context.Context, userID, videoID string) (*application.LikeState, error)
	ToggleCommentLike(ctx context.Context, userID, commentID string) (*application.LikeState, error)
	LikedVideos(ctx context.Context, userID string) ([]entity.LikedVideo, error)
}

type SubscriptionUseCases interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (*application.SubscriptionState, error)
	Channel(ctx context.Context, channelID string) (*entity.ChannelSubscriptions, error)
}

type PlaylistUseCases interface {
	Create(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error)
	ListMine(ctx context.Context, ownerID string) ([]entity.Playlist, error)
	Get(ctx context.Context, playlistID string) (*entity.PlaylistDetail, error)
	Update(ctx context.Context, actorID, playlistID string, in application.UpdatePlaylistInput) (*entity.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID string) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error)
}

var (
	_ UserUseCases         = (*application.UserService)(nil)
	_ VideoUseCases        = (*application.VideoService)(nil)
	_ CommentUseCases      = (*application.CommentService)(nil)
	_ LikeUseCases         = (*application.LikeService)(nil)
	_ SubscriptionUseCases = (*application.SubscriptionService)(nil)
	_ PlaylistUseCases     = (*application.PlaylistService)(nil)
)
