package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
)

type LikeService struct {
	Likes    repo.LikeRepository
	Videos   repo.VideoRepository
	Comments repo.CommentRepository
	Views    repo.ViewRepository
	Logger   *logrus.Logger
}

func NewLikeService(likes repo.LikeRepository, videos repo.VideoRepository, comments repo.CommentRepository, views repo.ViewRepository, logger *logrus.Logger) *LikeService {
	return &LikeService{Likes: likes, Videos: videos, Comments: comments, Views: views, Logger: logger}
}

type LikeState struct {
	IsLiked    bool  `json:"isLiked"`
	TotalLikes int64 `json:"totalLikes"`
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID string) (*LikeState, error) {
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return nil, fromStore(err, "video not found")
	}
	return s.toggle(ctx, userID, entity.VideoTarget(videoID))
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID string) (*LikeState, error) {
	if _, err := s.Comments.GetByID(ctx, commentID); err != nil {
		return nil, fromStore(err, "comment not found")
	}
	return s.toggle(ctx, userID, entity.CommentTarget(commentID))
}

func (s *LikeService) toggle(ctx context.Context, userID string, target entity.LikeTarget) (*LikeState, error) {
	res, err := Toggle[likeKey](ctx, likeEdges{repo: s.Likes}, "like_"+string(target.Kind()), likeKey{actor: userID, target: target})
	if err != nil {
		return nil, fromStore(err, "like not found")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"target":  target.ID(),
			"kind":    target.Kind(),
			"liked":   res.On,
		}).Debug("like toggled")
	}
	return &LikeState{IsLiked: res.On, TotalLikes: res.Count}, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID string) ([]entity.LikedVideo, error) {
	v, err := s.Views.LikedVideos(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	return v, nil
}
