package repository

import (
	"context"

	"github.com/stayhub/rental-api/internal/domain/entity"
)

// CommentRepository defines the store contract for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	// ListByOffer returns comments for an offer, newest first. A limit <= 0
	// returns every comment (used by rating recomputation).
	ListByOffer(ctx context.Context, offerID string, limit int) ([]*entity.Comment, error)
	DeleteByOffer(ctx context.Context, offerID string) (int64, error)
}
