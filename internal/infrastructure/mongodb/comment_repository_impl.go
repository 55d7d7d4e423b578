package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(colComments)}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	video, err := objectID(c.Video)
	if err != nil {
		return err
	}
	owner, err := objectID(c.Owner)
	if err != nil {
		return err
	}
	ts := now()
	doc := commentDoc{
		ID:        primitive.NewObjectID(),
		Content:   c.Content,
		Video:     video,
		Owner:     owner,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	c.ID = doc.ID.Hex()
	c.CreatedAt, c.UpdatedAt = ts, ts
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc commentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc commentDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"content": content, "updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
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

func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID string) ([]string, error) {
	vid, err := objectID(videoID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"video": vid}
	cur, err := r.col.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	if _, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return hexes(ids), nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
