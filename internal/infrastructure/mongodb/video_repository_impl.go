package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
)

type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{col: db.Collection(colVideos)}
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	owner, err := objectID(v.Owner)
	if err != nil {
		return err
	}
	ts := now()
	doc := videoDoc{
		ID:          primitive.NewObjectID(),
		Owner:       owner,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	v.ID = doc.ID.Hex()
	v.CreatedAt, v.UpdatedAt = ts, ts
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc videoDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *VideoRepository) Update(ctx context.Context, v *entity.Video) error {
	oid, err := objectID(v.ID)
	if err != nil {
		return err
	}
	v.UpdatedAt = now()
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":       v.Title,
		"description": v.Description,
		"thumbnail":   v.Thumbnail,
		"isPublished": v.IsPublished,
		"updatedAt":   v.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
