package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

type VideoService struct {
	Videos   repo.VideoRepository
	Comments repo.CommentRepository
	Likes    repo.LikeRepository
	Users    repo.UserRepository
	Views    repo.ViewRepository
	Media    MediaStore
	Index    VideoIndexer
	Logger   *logrus.Logger
}

func NewVideoService(videos repo.VideoRepository, comments repo.CommentRepository, likes repo.LikeRepository, users repo.UserRepository, views repo.ViewRepository, media MediaStore, index VideoIndexer, logger *logrus.Logger) *VideoService {
	return &VideoService{
		Videos:   videos,
		Comments: comments,
		Likes:    likes,
		Users:    users,
		Views:    views,
		Media:    media,
		Index:    index,
		Logger:   logger,
	}
}

type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *LocalFile
	Thumbnail   *LocalFile
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *LocalFile
}

// Publish uploads the video file and then the thumbnail; the record is only created once both
// URLs exist. New videos are published.
func (s *VideoService) Publish(ctx context.Context, ownerID string, in PublishInput) (*entity.Video, error) {
	defer discard(in.VideoFile, in.Thumbnail)

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperror.Validation("title and description are required")
	}
	if in.VideoFile == nil || in.Thumbnail == nil {
		return nil, apperror.Validation("videoFile and thumbnail are required")
	}
	if in.Duration < 0 {
		return nil, apperror.Validation("duration cannot be negative")
	}

	videoAsset, err := uploadAndDiscard(ctx, s.Media, in.VideoFile, FolderVideos)
	if err != nil {
		return nil, err
	}
	thumb, err := uploadAndDiscard(ctx, s.Media, in.Thumbnail, FolderThumbnails)
	if err != nil {
		deleteAssets(ctx, s.Media, s.Logger, videoAsset.URL)
		return nil, err
	}

	v := &entity.Video{
		Owner:       ownerID,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumb.URL,
		Title:       title,
		Description: description,
		Duration:    in.Duration,
		IsPublished: true,
	}
	if err := s.Videos.Create(ctx, v); err != nil {
		deleteAssets(ctx, s.Media, s.Logger, videoAsset.URL, thumb.URL)
		return nil, apperror.Internal("something went wrong while publishing the video", err)
	}
	s.reindex(ctx, v)
	return v, nil
}

// Get returns the video view and records the view for the caller. Unpublished videos are only
// visible to their owner.
func (s *VideoService) Get(ctx context.Context, viewerID, videoID string) (*entity.VideoDetail, error) {
	d, err := s.Views.VideoDetail(ctx, videoID)
	if err != nil {
		return nil, fromStore(err, "video not found")
	}
	if !d.IsPublished && (d.Owner == nil || d.Owner.ID != viewerID) {
		return nil, apperror.NotFound("video not found")
	}

	if err := s.Videos.IncrementViews(ctx, videoID); err != nil {
		bestEffortFailed(s.Logger, "view_increment", err, logrus.Fields{"video_id": videoID})
	} else {
		d.Views++
	}
	if viewerID != "" {
		if err := s.Users.AppendWatchHistory(ctx, viewerID, videoID); err != nil {
			bestEffortFailed(s.Logger, "watch_history", err, logrus.Fields{"video_id": videoID, "user_id": viewerID})
		}
	}
	return d, nil
}

// ownedVideo loads a video and checks that actorID owns it: missing is 404, foreign is 403.
func (s *VideoService) ownedVideo(ctx context.Context, actorID, videoID, action string) (*entity.Video, error) {
	v, err := s.Videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fromStore(err, "video not found")
	}
	if !v.OwnedBy(actorID) {
		return nil, apperror.Forbidden("you are not allowed to " + action + " this video")
	}
	return v, nil
}

func (s *VideoService) Update(ctx context.Context, actorID, videoID string, in UpdateVideoInput) (*entity.Video, error) {
	defer discard(in.Thumbnail)
	if in.Title == nil && in.Description == nil && in.Thumbnail == nil {
		return nil, apperror.Validation("at least one of title, description or thumbnail is required")
	}
	v, err := s.ownedVideo(ctx, actorID, videoID, "edit")
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, apperror.Validation("title cannot be blank")
		}
		v.Title = t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, apperror.Validation("description cannot be blank")
		}
		v.Description = d
	}
	oldThumb := ""
	if in.Thumbnail != nil {
		thumb, err := uploadAndDiscard(ctx, s.Media, in.Thumbnail, FolderThumbnails)
		if err != nil {
			return nil, err
		}
		oldThumb, v.Thumbnail = v.Thumbnail, thumb.URL
	}
	if err := s.Videos.Update(ctx, v); err != nil {
		if oldThumb != "" {
			deleteAssets(ctx, s.Media, s.Logger, v.Thumbnail)
		}
		return nil, fromStore(err, "video not found")
	}
	deleteAssets(ctx, s.Media, s.Logger, oldThumb)
	s.reindex(ctx, v)
	return v, nil
}

// Delete hard-deletes the video, then removes its comments, likes on it and on its comments,
// and its stored assets. Cleanup after the delete is best-effort.
func (s *VideoService) Delete(ctx context.Context, actorID, videoID string) error {
	v, err := s.ownedVideo(ctx, actorID, videoID, "delete")
	if err != nil {
		return err
	}
	if err := s.Videos.Delete(ctx, videoID); err != nil {
		return fromStore(err, "video not found")
	}

	targets := []entity.LikeTarget{entity.VideoTarget(videoID)}
	commentIDs, err := s.Comments.DeleteByVideo(ctx, videoID)
	if err != nil {
		bestEffortFailed(s.Logger, "comment_cascade", err, logrus.Fields{"video_id": videoID})
	}
	for _, id := range commentIDs {
		targets = append(targets, entity.CommentTarget(id))
	}
	if err := s.Likes.DeleteByTargets(ctx, targets...); err != nil {
		bestEffortFailed(s.Logger, "like_cascade", err, logrus.Fields{"video_id": videoID})
	}
	deleteAssets(ctx, s.Media, s.Logger, v.VideoFile, v.Thumbnail)
	if s.Index != nil {
		if err := s.Index.DeleteVideo(ctx, videoID); err != nil {
			bestEffortFailed(s.Logger, "search_index", err, logrus.Fields{"video_id": videoID})
		}
	}
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID string) (*entity.Video, error) {
	v, err := s.ownedVideo(ctx, actorID, videoID, "publish")
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	if err := s.Videos.Update(ctx, v); err != nil {
		return nil, fromStore(err, "video not found")
	}
	s.reindex(ctx, v)
	return v, nil
}

// Search queries the index of published videos. page is 1-based.
func (s *VideoService) Search(ctx context.Context, query string, page, limit int) (*SearchPage, error) {
	if s.Index == nil {
		return nil, apperror.Upstream("search is not available", errors.New("no video index configured"))
	}
	res, err := s.Index.SearchVideos(ctx, strings.TrimSpace(query), page, limit)
	if err != nil {
		return nil, apperror.Upstream("search failed", err)
	}
	return res, nil
}

func (s *VideoService) reindex(ctx context.Context, v *entity.Video) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexVideo(ctx, v); err != nil {
		bestEffortFailed(s.Logger, "search_index", err, logrus.Fields{"video_id": v.ID})
	}
}
