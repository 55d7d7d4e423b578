package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

type PlaylistService struct {
	Playlists repo.PlaylistRepository
	Videos    repo.VideoRepository
	Views     repo.ViewRepository
	Logger    *logrus.Logger
}

func NewPlaylistService(playlists repo.PlaylistRepository, videos repo.VideoRepository, views repo.ViewRepository, logger *logrus.Logger) *PlaylistService {
	return &PlaylistService{Playlists: playlists, Videos: videos, Views: views, Logger: logger}
}

type UpdatePlaylistInput struct {
	Name        *string
	Description *string
}

func (s *PlaylistService) Create(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = entity.DefaultPlaylistDescription
	}
	p := &entity.Playlist{Name: name, Description: description, Owner: ownerID, Videos: []string{}}
	if err := s.Playlists.Create(ctx, p); err != nil {
		return nil, apperror.Internal("failed to create playlist", err)
	}
	return p, nil
}

func (s *PlaylistService) ListMine(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	list, err := s.Playlists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	return list, nil
}

func (s *PlaylistService) Get(ctx context.Context, playlistID string) (*entity.PlaylistDetail, error) {
	p, err := s.Views.PlaylistDetail(ctx, playlistID)
	if err != nil {
		return nil, fromStore(err, "playlist not found")
	}
	return p, nil
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, actorID, playlistID, action string) (*entity.Playlist, error) {
	p, err := s.Playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, fromStore(err, "playlist not found")
	}
	if !p.OwnedBy(actorID) {
		return nil, apperror.Forbidden("you are not allowed to " + action + " this playlist")
	}
	return p, nil
}

func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID string, in UpdatePlaylistInput) (*entity.Playlist, error) {
	if in.Name == nil && in.Description == nil {
		return nil, apperror.Validation("name or description is required")
	}
	p, err := s.ownedPlaylist(ctx, actorID, playlistID, "edit")
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.Validation("name cannot be blank")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
		if p.Description == "" {
			p.Description = entity.DefaultPlaylistDescription
		}
	}
	if err := s.Playlists.Update(ctx, p); err != nil {
		return nil, fromStore(err, "playlist not found")
	}
	return p, nil
}

func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID string) error {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID, "delete"); err != nil {
		return err
	}
	if err := s.Playlists.Delete(ctx, playlistID); err != nil {
		return fromStore(err, "playlist not found")
	}
	return nil
}

// AddVideo appends videoID; duplicates are kept.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID, "modify"); err != nil {
		return nil, err
	}
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return nil, fromStore(err, "video not found")
	}
	p, err := s.Playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, fromStore(err, "playlist not found")
	}
	return p, nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID, "modify"); err != nil {
		return nil, err
	}
	p, err := s.Playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, fromStore(err, "playlist not found")
	}
	return p, nil
}
