package entity

import (
	"time"
)

// Comment belongs to an offer and feeds the offer's rating aggregation.
// Rating is constrained to [1,5].
type Comment struct {
	ID        string
	OfferID   string
	UserID    string
	Text      string
	Rating    int
	CreatedAt time.Time
}
