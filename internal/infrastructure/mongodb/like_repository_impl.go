package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
)

type LikeRepository struct {
	col *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{col: db.Collection(colLikes)}
}

// targetFilter selects likes pointing at target by its own key.
func targetFilter(target entity.LikeTarget) (bson.M, error) {
	if !target.Valid() {
		return nil, entity.ErrInvalidLikeTarget
	}
	oid, err := objectID(target.ID())
	if err != nil {
		return nil, err
	}
	return bson.M{string(target.Kind()): oid}, nil
}

func (r *LikeRepository) Insert(ctx context.Context, l *entity.Like) error {
	if !l.Target.Valid() {
		return entity.ErrInvalidLikeTarget
	}
	liker, err := objectID(l.LikedBy)
	if err != nil {
		return err
	}
	ref, err := objectID(l.Target.ID())
	if err != nil {
		return err
	}
	doc := likeDoc{ID: primitive.NewObjectID(), LikedBy: liker, CreatedAt: now()}
	switch l.Target.Kind() {
	case entity.LikeTargetVideo:
		doc.Video = &ref
	case entity.LikeTargetComment:
		doc.Comment = &ref
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	l.ID = doc.ID.Hex()
	l.CreatedAt = doc.CreatedAt
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, likedBy string, target entity.LikeTarget) (bool, error) {
	filter, err := targetFilter(target)
	if err != nil {
		return false, err
	}
	liker, err := objectID(likedBy)
	if err != nil {
		return false, err
	}
	filter["likedBy"] = liker
	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *LikeRepository) CountByTarget(ctx context.Context, target entity.LikeTarget) (int64, error) {
	filter, err := targetFilter(target)
	if err != nil {
		return 0, err
	}
	return r.col.CountDocuments(ctx, filter)
}

func (r *LikeRepository) DeleteByTargets(ctx context.Context, targets ...entity.LikeTarget) error {
	if len(targets) == 0 {
		return nil
	}
	or := make(bson.A, 0, len(targets))
	for _, t := range targets {
		f, err := targetFilter(t)
		if err != nil {
			return err
		}
		or = append(or, f)
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"$or": or})
	return err
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
