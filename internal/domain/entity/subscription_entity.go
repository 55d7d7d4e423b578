package entity

import "time"

// Subscription is an edge from a subscriber to a channel. A channel is just a User.
type Subscription struct {
	ID         string    `json:"id"`
	Subscriber string    `json:"subscriber"`
	Channel    string    `json:"channel"`
	CreatedAt  time.Time `json:"createdAt"`
}
