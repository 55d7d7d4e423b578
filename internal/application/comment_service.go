package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

const (
	defaultCommentPage  = 1
	defaultCommentLimit = 10
	maxCommentLimit     = 100
)

type CommentService struct {
	Comments repo.CommentRepository
	Videos   repo.VideoRepository
	Likes    repo.LikeRepository
	Views    repo.ViewRepository
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, videos repo.VideoRepository, likes repo.LikeRepository, views repo.ViewRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Videos: videos, Likes: likes, Views: views, Logger: logger}
}

func (s *CommentService) Add(ctx context.Context, ownerID, videoID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return nil, fromStore(err, "video not found")
	}
	c := &entity.Comment{Content: content, Video: videoID, Owner: ownerID}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, apperror.Internal("failed to add comment", err)
	}
	return c, nil
}

// List pages through a video's comments. A video without comments yields an empty list.
func (s *CommentService) List(ctx context.Context, videoID string, page, limit int) ([]entity.CommentView, error) {
	if page < 1 {
		page = defaultCommentPage
	}
	if limit < 1 {
		limit = defaultCommentLimit
	}
	if limit > maxCommentLimit {
		limit = maxCommentLimit
	}
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return nil, fromStore(err, "video not found")
	}
	list, err := s.Views.VideoComments(ctx, videoID, page, limit)
	if err != nil {
		return nil, fromStore(err, "video not found")
	}
	return list, nil
}

func (s *CommentService) ownedComment(ctx context.Context, actorID, commentID, action string) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fromStore(err, "comment not found")
	}
	if !c.OwnedBy(actorID) {
		return nil, apperror.Forbidden("you are not allowed to " + action + " this comment")
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, actorID, commentID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	if _, err := s.ownedComment(ctx, actorID, commentID, "edit"); err != nil {
		return nil, err
	}
	c, err := s.Comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, fromStore(err, "comment not found")
	}
	return c, nil
}

// Delete removes the comment and, best-effort, the likes on it.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID string) error {
	if _, err := s.ownedComment(ctx, actorID, commentID, "delete"); err != nil {
		return err
	}
	if err := s.Comments.Delete(ctx, commentID); err != nil {
		return fromStore(err, "comment not found")
	}
	if err := s.Likes.DeleteByTargets(ctx, entity.CommentTarget(commentID)); err != nil {
		bestEffortFailed(s.Logger, "like_cascade", err, logrus.Fields{"comment_id": commentID})
	}
	return nil
}
