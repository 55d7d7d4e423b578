package entity

import (
	"encoding/json"
	"errors"
	"time"
)

// LikeTargetKind names what a Like points at.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
)

var (
	ErrInvalidLikeTarget = errors.New("like target must reference exactly one video or comment")
	ErrMissingLiker      = errors.New("like requires the liking user")
)

// LikeTarget is a tagged variant: exactly one of video or comment.
// The zero value is invalid; build targets with VideoTarget or CommentTarget.
type LikeTarget struct {
	kind LikeTargetKind
	id   string
}

func VideoTarget(videoID string) LikeTarget {
	return LikeTarget{kind: LikeTargetVideo, id: videoID}
}

func CommentTarget(commentID string) LikeTarget {
	return LikeTarget{kind: LikeTargetComment, id: commentID}
}

func (t LikeTarget) Kind() LikeTargetKind { return t.kind }
func (t LikeTarget) ID() string           { return t.id }

// Valid reports whether the target names a kind and an id.
func (t LikeTarget) Valid() bool {
	return (t.kind == LikeTargetVideo || t.kind == LikeTargetComment) && t.id != ""
}

// Like is an edge from a user to a video or a comment.
type Like struct {
	ID        string
	Target    LikeTarget
	LikedBy   string
	CreatedAt time.Time
}

// NewLike builds a Like, enforcing the one-target rule.
func NewLike(likedBy string, target LikeTarget) (*Like, error) {
	if likedBy == "" {
		return nil, ErrMissingLiker
	}
	if !target.Valid() {
		return nil, ErrInvalidLikeTarget
	}
	return &Like{Target: target, LikedBy: likedBy}, nil
}

// MarshalJSON renders the populated reference under its own key ("video" or "comment").
func (l Like) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":        l.ID,
		"likedBy":   l.LikedBy,
		"createdAt": l.CreatedAt,
	}
	if l.Target.Valid() {
		out[string(l.Target.kind)] = l.Target.id
	}
	return json.Marshal(out)
}
