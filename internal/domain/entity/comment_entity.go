package entity

import "time"

// Comment is attached to one video and owned by one user.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Video     string    `json:"video"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) OwnedBy(userID string) bool { return c.Owner == userID }
