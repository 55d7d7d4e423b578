package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

type SubscriptionService struct {
	Subscriptions repo.SubscriptionRepository
	Users         repo.UserRepository
	Views         repo.ViewRepository
	Logger        *logrus.Logger
}

func NewSubscriptionService(subs repo.SubscriptionRepository, users repo.UserRepository, views repo.ViewRepository, logger *logrus.Logger) *SubscriptionService {
	return &SubscriptionService{Subscriptions: subs, Users: users, Views: views, Logger: logger}
}

type SubscriptionState struct {
	IsSubscribed     bool  `json:"isSubscribed"`
	SubscribersCount int64 `json:"subscribersCount"`
}

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (*SubscriptionState, error) {
	if subscriberID == channelID {
		return nil, apperror.Validation("you cannot subscribe to your own channel")
	}
	if _, err := s.Users.GetByID(ctx, channelID); err != nil {
		return nil, fromStore(err, "channel not found")
	}
	res, err := Toggle[subscriptionKey](ctx, subscriptionEdges{repo: s.Subscriptions}, "subscription",
		subscriptionKey{subscriber: subscriberID, channel: channelID})
	if err != nil {
		return nil, fromStore(err, "subscription not found")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"subscriber": subscriberID,
			"channel":    channelID,
			"subscribed": res.On,
		}).Debug("subscription toggled")
	}
	return &SubscriptionState{IsSubscribed: res.On, SubscribersCount: res.Count}, nil
}

// Channel returns the channel's subscriber count and the channels it subscribes to.
func (s *SubscriptionService) Channel(ctx context.Context, channelID string) (*entity.ChannelSubscriptions, error) {
	if _, err := s.Users.GetByID(ctx, channelID); err != nil {
		return nil, fromStore(err, "channel not found")
	}
	n, err := s.Subscriptions.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, fromStore(err, "channel not found")
	}
	subscribed, err := s.Views.SubscribedChannels(ctx, channelID)
	if err != nil {
		return nil, fromStore(err, "channel not found")
	}
	return &entity.ChannelSubscriptions{Subscribers: n, Subscribed: subscribed}, nil
}
