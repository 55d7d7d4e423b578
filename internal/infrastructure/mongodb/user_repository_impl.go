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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(colUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	history, err := objectIDs(u.WatchHistory)
	if err != nil {
		return err
	}
	ts := now()
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Password:     u.Password,
		Bio:          u.Bio,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		WatchHistory: history,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	u.ID = doc.ID.Hex()
	u.WatchHistory = hexes(history)
	u.CreatedAt, u.UpdatedAt = ts, ts
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	n, err := r.col.CountDocuments(ctx,
		bson.M{"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) updateByID(ctx context.Context, id string, update any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = now()
	set := bson.M{
		"fullName":  u.FullName,
		"email":     u.Email,
		"bio":       u.Bio,
		"avatar":    u.Avatar,
		"updatedAt": u.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if u.CoverImage != "" {
		set["coverImage"] = u.CoverImage
	} else {
		update["$unset"] = bson.M{"coverImage": ""}
	}
	return r.updateByID(ctx, u.ID, update)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": now()}})
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"refreshToken": token}})
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$unset": bson.M{"refreshToken": ""}})
}

// AppendWatchHistory moves videoID to the end of the history, dropping any earlier occurrence.
func (r *UserRepository) AppendWatchHistory(ctx context.Context, id, videoID string) error {
	vid, err := objectID(videoID)
	if err != nil {
		return err
	}
	update := mongo.Pipeline{
		stage("$set", bson.M{"watchHistory": bson.M{"$concatArrays": bson.A{
			bson.M{"$filter": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$watchHistory", bson.A{}}},
				"cond":  bson.M{"$ne": bson.A{"$$this", vid}},
			}},
			bson.A{vid},
		}}}),
	}
	return r.updateByID(ctx, id, update)
}

var _ repository.UserRepository = (*UserRepository)(nil)
