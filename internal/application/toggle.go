package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/internal/metrics"
)

// EdgeStore is the minimal store a toggled relation needs. K identifies one (actor, target) edge.
type EdgeStore[K any] interface {
	// RemoveEdge deletes the edge if present and reports whether it existed.
	RemoveEdge(ctx context.Context, key K) (bool, error)
	// InsertEdge creates the edge; repository.ErrDuplicate means it already exists.
	InsertEdge(ctx context.Context, key K) error
	// CountEdges counts all edges pointing at the key's target.
	CountEdges(ctx context.Context, key K) (int64, error)
}

type ToggleResult struct {
	On    bool
	Count int64
}

// Toggle flips the edge for key: delete if present, create if absent. The count is read after
// the mutation. The store's unique index keeps concurrent toggles from producing two edges; losing
// that race reports the edge as on.
func Toggle[K any](ctx context.Context, store EdgeStore[K], relation string, key K) (ToggleResult, error) {
	removed, err := store.RemoveEdge(ctx, key)
	if err != nil {
		return ToggleResult{}, err
	}
	on := !removed
	if on {
		if err := store.InsertEdge(ctx, key); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return ToggleResult{}, err
		}
	}
	n, err := store.CountEdges(ctx, key)
	if err != nil {
		return ToggleResult{}, err
	}
	state := "off"
	if on {
		state = "on"
	}
	metrics.ToggleTotal.WithLabelValues(relation, state).Inc()
	return ToggleResult{On: on, Count: n}, nil
}

type likeKey struct {
	actor  string
	target entity.LikeTarget
}

// likeEdges adapts a LikeRepository to EdgeStore.
type likeEdges struct {
	repo repository.LikeRepository
}

func (e likeEdges) RemoveEdge(ctx context.Context, k likeKey) (bool, error) {
	return e.repo.Delete(ctx, k.actor, k.target)
}

func (e likeEdges) InsertEdge(ctx context.Context, k likeKey) error {
	l, err := entity.NewLike(k.actor, k.target)
	if err != nil {
		return err
	}
	return e.repo.Insert(ctx, l)
}

func (e likeEdges) CountEdges(ctx context.Context, k likeKey) (int64, error) {
	return e.repo.CountByTarget(ctx, k.target)
}

type subscriptionKey struct {
	subscriber string
	channel    string
}

type subscriptionEdges struct {
	repo repository.SubscriptionRepository
}

func (e subscriptionEdges) RemoveEdge(ctx context.Context, k subscriptionKey) (bool, error) {
	return e.repo.Delete(ctx, k.subscriber, k.channel)
}

func (e subscriptionEdges) InsertEdge(ctx context.Context, k subscriptionKey) error {
	return e.repo.Insert(ctx, &entity.Subscription{Subscriber: k.subscriber, Channel: k.channel})
}

func (e subscriptionEdges) CountEdges(ctx context.Context, k subscriptionKey) (int64, error) {
	return e.repo.CountByChannel(ctx, k.channel)
}
