package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
)

// ViewRepository runs the read-model pipelines.
type ViewRepository struct {
	db *mongo.Database
}

func NewViewRepository(db *mongo.Database) *ViewRepository {
	return &ViewRepository{db: db}
}

func aggregateAll[T any](ctx context.Context, col *mongo.Collection, pipe mongo.Pipeline) ([]T, error) {
	cur, err := col.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func aggregateOne[T any](ctx context.Context, col *mongo.Collection, pipe mongo.Pipeline) (*T, error) {
	rows, err := aggregateAll[T](ctx, col, pipe)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (r *ViewRepository) ChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	// An anonymous or malformed viewer simply never matches a subscriber.
	viewer, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		viewer = primitive.NilObjectID
	}
	return aggregateOne[entity.ChannelProfile](ctx, r.db.Collection(colUsers), ChannelProfilePipeline(username, viewer))
}

func (r *ViewRepository) WatchHistory(ctx context.Context, userID string) ([]entity.VideoCard, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	row, err := aggregateOne[struct {
		History []entity.VideoCard `bson:"history"`
	}](ctx, r.db.Collection(colUsers), WatchHistoryPipeline(uid))
	if err != nil {
		return nil, err
	}
	if row.History == nil {
		return []entity.VideoCard{}, nil
	}
	return row.History, nil
}

func (r *ViewRepository) VideoDetail(ctx context.Context, videoID string) (*entity.VideoDetail, error) {
	vid, err := objectID(videoID)
	if err != nil {
		return nil, err
	}
	return aggregateOne[entity.VideoDetail](ctx, r.db.Collection(colVideos), VideoDetailPipeline(vid))
}

func (r *ViewRepository) PlaylistDetail(ctx context.Context, playlistID string) (*entity.PlaylistDetail, error) {
	pid, err := objectID(playlistID)
	if err != nil {
		return nil, err
	}
	p, err := aggregateOne[entity.PlaylistDetail](ctx, r.db.Collection(colPlaylists), PlaylistDetailPipeline(pid))
	if err != nil {
		return nil, err
	}
	if p.Videos == nil {
		p.Videos = []entity.PlaylistVideo{}
	}
	return p, nil
}

func (r *ViewRepository) VideoComments(ctx context.Context, videoID string, page, limit int) ([]entity.CommentView, error) {
	vid, err := objectID(videoID)
	if err != nil {
		return nil, err
	}
	return aggregateAll[entity.CommentView](ctx, r.db.Collection(colComments), VideoCommentsPipeline(vid, page, limit))
}

func (r *ViewRepository) LikedVideos(ctx context.Context, userID string) ([]entity.LikedVideo, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return aggregateAll[entity.LikedVideo](ctx, r.db.Collection(colLikes), LikedVideosPipeline(uid))
}

func (r *ViewRepository) SubscribedChannels(ctx context.Context, userID string) ([]entity.SubscribedChannel, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return aggregateAll[entity.SubscribedChannel](ctx, r.db.Collection(colSubscriptions), SubscribedChannelsPipeline(uid))
}

var _ repository.ViewRepository = (*ViewRepository)(nil)
