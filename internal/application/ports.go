package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/pkg/helpers"
)

// LocalFile is an upload already staged on local disk by the transport layer.
type LocalFile struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Asset is a stored media object reachable by URL.
type Asset struct {
	URL string
}

// Media folders.
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)

// MediaStore uploads local files to object storage and deletes them by URL.
type MediaStore interface {
	Upload(ctx context.Context, file LocalFile, folder string) (Asset, error)
	Delete(ctx context.Context, url string) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer signs and verifies the access/refresh pair.
type TokenIssuer interface {
	GenerateAccessToken(userID string) (string, time.Time, error)
	GenerateRefreshToken(userID string) (string, time.Time, error)
	ParseRefreshToken(token string) (*helpers.Claims, error)
}

// VideoIndexer keeps the full-text index of published videos.
type VideoIndexer interface {
	IndexVideo(ctx context.Context, v *entity.Video) error
	DeleteVideo(ctx context.Context, id string) error
	SearchVideos(ctx context.Context, query string, page, limit int) (*SearchPage, error)
}

type SearchPage struct {
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Videos []entity.Video `json:"videos"`
}

// Notifier sends account emails asynchronously.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
	PasswordChanged(ctx context.Context, u *entity.User) error
}
