package repository

import (
	"context"

	"github.com/stayhub/rental-api/internal/domain/entity"
)

// FavoriteRepository defines the store contract for user/offer favorite
// relations. Add is idempotent and Remove tolerates a missing relation.
type FavoriteRepository interface {
	Add(ctx context.Context, f *entity.Favorite) error
	Remove(ctx context.Context, userID, offerID string) error
	Exists(ctx context.Context, userID, offerID string) (bool, error)
	// ListOfferIDs returns every offer id the user has favorited in a single
	// query; favorite enrichment relies on this being one round trip.
	ListOfferIDs(ctx context.Context, userID string) ([]string, error)
}
