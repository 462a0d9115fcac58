package entity

import (
	"time"
)

// Favorite links a user to an offer they favorited. At most one relation
// exists per (UserID, OfferID) pair.
type Favorite struct {
	UserID    string
	OfferID   string
	CreatedAt time.Time
}
