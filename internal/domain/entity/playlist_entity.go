package entity

import "time"

// DefaultPlaylistDescription is stored when a playlist is created without a description.
const DefaultPlaylistDescription = "a playlist"

// Playlist is an ordered list of video references owned by one user.
// Duplicate references are kept as given.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Videos      []string  `json:"videos"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Playlist) OwnedBy(userID string) bool { return p.Owner == userID }
