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

type PlaylistRepository struct {
	col *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{col: db.Collection(colPlaylists)}
}

func (r *PlaylistRepository) Create(ctx context.Context, p *entity.Playlist) error {
	owner, err := objectID(p.Owner)
	if err != nil {
		return err
	}
	videos, err := objectIDs(p.Videos)
	if err != nil {
		return err
	}
	ts := now()
	doc := playlistDoc{
		ID:          primitive.NewObjectID(),
		Name:        p.Name,
		Description: p.Description,
		Videos:      videos,
		Owner:       owner,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	p.ID = doc.ID.Hex()
	p.Videos = hexes(videos)
	p.CreatedAt, p.UpdatedAt = ts, ts
	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc playlistDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, owner string) ([]entity.Playlist, error) {
	oid, err := objectID(owner)
	if err != nil {
		return nil, err
	}
	cur, err := r.col.Find(ctx, bson.M{"owner": oid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []playlistDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Playlist, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toEntity())
	}
	return out, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, p *entity.Playlist) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	p.UpdatedAt = now()
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"updatedAt":   p.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
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

func (r *PlaylistRepository) modifyVideos(ctx context.Context, playlistID, videoID, op string) (*entity.Playlist, error) {
	pid, err := objectID(playlistID)
	if err != nil {
		return nil, err
	}
	vid, err := objectID(videoID)
	if err != nil {
		return nil, err
	}
	var doc playlistDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": pid},
		bson.M{op: bson.M{"videos": vid}, "$set": bson.M{"updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) (*entity.Playlist, error) {
	return r.modifyVideos(ctx, playlistID, videoID, "$push")
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (*entity.Playlist, error) {
	return r.modifyVideos(ctx, playlistID, videoID, "$pull")
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
