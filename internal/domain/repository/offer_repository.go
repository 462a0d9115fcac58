package repository

import (
	"context"

	"github.com/stayhub/rental-api/internal/domain/entity"
)

// OfferRepository defines the store contract for offers. GetByID returns
// (nil, nil) when the offer does not exist; errors are reserved for store
// failures.
type OfferRepository interface {
	Create(ctx context.Context, o *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	// List returns offers newest first, capped at limit.
	List(ctx context.Context, limit int) ([]*entity.Offer, error)
	ListPremiumByCity(ctx context.Context, city entity.City, limit int) ([]*entity.Offer, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Offer, error)
	Update(ctx context.Context, o *entity.Offer) error
	Delete(ctx context.Context, id string) error
	// SetRating overwrites the denormalized rating value.
	SetRating(ctx context.Context, id string, rating float64) error
	IncrementComments(ctx context.Context, id string, delta int) error
}
