package entity

import "time"

// View models are read-only, denormalized shapes produced by the aggregation layer.
// To-one joins are pointers: an object or null, never an array.

// OwnerSummary is the public subset of a user embedded in other views.
type OwnerSummary struct {
	ID       string `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	FullName string `json:"fullName" bson:"fullName"`
	Avatar   string `json:"avatar" bson:"avatar"`
}

// ChannelProfile is a user seen as a channel by some viewer.
type ChannelProfile struct {
	ID                        string    `json:"id" bson:"_id"`
	Username                  string    `json:"username" bson:"username"`
	FullName                  string    `json:"fullName" bson:"fullName"`
	Bio                       string    `json:"bio" bson:"bio"`
	Avatar                    string    `json:"avatar" bson:"avatar"`
	CoverImage                string    `json:"coverImage" bson:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount" bson:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount" bson:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed" bson:"isSubscribed"`
	CreatedAt                 time.Time `json:"createdAt" bson:"createdAt"`
}

// VideoCard is a video with its owner summary, used by history and liked lists.
type VideoCard struct {
	ID          string        `json:"id" bson:"_id"`
	VideoFile   string        `json:"videoFile" bson:"videoFile"`
	Thumbnail   string        `json:"thumbnail" bson:"thumbnail"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Duration    float64       `json:"duration" bson:"duration"`
	Views       int64         `json:"views" bson:"views"`
	IsPublished bool          `json:"isPublished" bson:"isPublished"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	Owner       *OwnerSummary `json:"owner" bson:"owner,omitempty"`
}

// VideoOwner is the owner block of a single-video view, with channel counts.
type VideoOwner struct {
	ID               string `json:"id" bson:"_id"`
	Username         string `json:"username" bson:"username"`
	FullName         string `json:"fullName" bson:"fullName"`
	Avatar           string `json:"avatar" bson:"avatar"`
	Bio              string `json:"bio" bson:"bio"`
	SubscribersCount int64  `json:"subscribersCount" bson:"subscribersCount"`
	SubscribedCount  int64  `json:"subscribedCount" bson:"subscribedCount"`
}

// VideoDetail is the single-video view.
type VideoDetail struct {
	ID          string      `json:"id" bson:"_id"`
	VideoFile   string      `json:"videoFile" bson:"videoFile"`
	Thumbnail   string      `json:"thumbnail" bson:"thumbnail"`
	Title       string      `json:"title" bson:"title"`
	Description string      `json:"description" bson:"description"`
	Duration    float64     `json:"duration" bson:"duration"`
	Views       int64       `json:"views" bson:"views"`
	IsPublished bool        `json:"isPublished" bson:"isPublished"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
	Owner       *VideoOwner `json:"owner" bson:"owner,omitempty"`
}

// PlaylistVideo is the public subset of a video inside a playlist view.
type PlaylistVideo struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Thumbnail   string    `json:"thumbnail" bson:"thumbnail"`
	Description string    `json:"description" bson:"description"`
	Duration    float64   `json:"duration" bson:"duration"`
	Views       int64     `json:"views" bson:"views"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// PlaylistDetail is the playlist view with populated owner and videos.
type PlaylistDetail struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description" bson:"description"`
	Owner       *OwnerSummary   `json:"owner" bson:"owner,omitempty"`
	Videos      []PlaylistVideo `json:"videos" bson:"videos"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// CommentAuthor is the owner block of a comment: username and avatar only.
type CommentAuthor struct {
	ID       string `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Avatar   string `json:"avatar" bson:"avatar"`
}

// CommentView is a comment with its author.
type CommentView struct {
	ID        string         `json:"id" bson:"_id"`
	Content   string         `json:"content" bson:"content"`
	Video     string         `json:"video" bson:"video"`
	Owner     *CommentAuthor `json:"owner" bson:"owner,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// LikedVideo is one entry of a user's liked-videos list.
type LikedVideo struct {
	ID      string     `json:"id" bson:"_id"`
	LikedAt time.Time  `json:"likedAt" bson:"likedAt"`
	Video   *VideoCard `json:"video" bson:"video,omitempty"`
}

// SubscribedChannel is one channel a user subscribes to.
type SubscribedChannel struct {
	ID           string        `json:"id" bson:"_id"`
	SubscribedAt time.Time     `json:"subscribedAt" bson:"subscribedAt"`
	Channel      *OwnerSummary `json:"channel" bson:"channel,omitempty"`
}

// ChannelSubscriptions summarizes both directions of a channel's subscription edges.
type ChannelSubscriptions struct {
	Subscribers int64               `json:"subscribers"`
	Subscribed  []SubscribedChannel `json:"subscribed"`
}
