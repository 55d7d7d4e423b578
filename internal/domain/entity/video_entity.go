package entity

import "time"

// Video is an uploaded video owned by exactly one user. Owner never changes after creation.
type Video struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnedBy reports whether userID is the video's owner.
func (v *Video) OwnedBy(userID string) bool { return v.Owner == userID }
