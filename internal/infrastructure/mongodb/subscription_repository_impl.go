package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
)

type SubscriptionRepository struct {
	col *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{col: db.Collection(colSubscriptions)}
}

func pairFilter(subscriber, channel string) (bson.M, error) {
	sub, err := objectID(subscriber)
	if err != nil {
		return nil, err
	}
	ch, err := objectID(channel)
	if err != nil {
		return nil, err
	}
	return bson.M{"subscriber": sub, "channel": ch}, nil
}

func (r *SubscriptionRepository) Insert(ctx context.Context, s *entity.Subscription) error {
	sub, err := objectID(s.Subscriber)
	if err != nil {
		return err
	}
	ch, err := objectID(s.Channel)
	if err != nil {
		return err
	}
	doc := subscriptionDoc{ID: primitive.NewObjectID(), Subscriber: sub, Channel: ch, CreatedAt: now()}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	s.ID = doc.ID.Hex()
	s.CreatedAt = doc.CreatedAt
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriber, channel string) (bool, error) {
	filter, err := pairFilter(subscriber, channel)
	if err != nil {
		return false, err
	}
	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *SubscriptionRepository) CountByChannel(ctx context.Context, channel string) (int64, error) {
	ch, err := objectID(channel)
	if err != nil {
		return 0, err
	}
	return r.col.CountDocuments(ctx, bson.M{"channel": ch})
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
