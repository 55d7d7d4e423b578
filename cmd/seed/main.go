package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-videotube/config"
	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-videotube/pkg/helpers"
)

// Seeds a demo channel with one published video and a playlist holding it.
// Re-running reuses the existing demo user and only adds content when the user has no playlist.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI, cfg.MongoMaxPool, cfg.MongoConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := mongodb.RunMigrations(client, cfg.MongoDB, nil); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	db := client.Database(cfg.MongoDB)

	users := mongodb.NewUserRepository(db)
	videos := mongodb.NewVideoRepository(db)
	playlists := mongodb.NewPlaylistRepository(db)

	email := "demo@videotube.local"
	password := "password123"

	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, herr := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
		if herr != nil {
			log.Fatalf("failed to hash password: %v", herr)
		}
		u = &entity.User{
			Username:     "demouser",
			Email:        email,
			FullName:     "Demo User",
			Password:     hash,
			Bio:          "Seeded demo channel",
			Avatar:       helpers.PublicURL(cfg.GCSBucket, "avatars/demo.png"),
			WatchHistory: []string{},
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	case err != nil:
		log.Fatalf("failed to look up demo user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", u.ID, email, u.Username, password)

	existing, err := playlists.ListByOwner(ctx, u.ID)
	if err != nil {
		log.Fatalf("failed to list playlists: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("demo content already present")
		return
	}

	v := &entity.Video{
		Owner:       u.ID,
		VideoFile:   helpers.PublicURL(cfg.GCSBucket, "videos/demo.mp4"),
		Thumbnail:   helpers.PublicURL(cfg.GCSBucket, "thumbnails/demo.jpg"),
		Title:       "Welcome to videotube",
		Description: "A seeded demo video",
		Duration:    42,
		IsPublished: true,
	}
	if err := videos.Create(ctx, v); err != nil {
		log.Fatalf("failed to seed video: %v", err)
	}
	p := &entity.Playlist{
		Name:        "Demo picks",
		Description: entity.DefaultPlaylistDescription,
		Owner:       u.ID,
		Videos:      []string{v.ID},
	}
	if err := playlists.Create(ctx, p); err != nil {
		log.Fatalf("failed to seed playlist: %v", err)
	}
	fmt.Printf("seeded video=%s playlist=%s\n", v.ID, p.ID)
}
