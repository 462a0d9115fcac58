package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/domain/repository"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Add inserts the relation, keeping at most one row per (user, offer) pair.
func (r *FavoriteRepository) Add(ctx context.Context, f *entity.Favorite) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, offer_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, offer_id) DO NOTHING
	`, f.UserID, f.OfferID)
	return err
}

// Remove deletes the relation if present; removing a missing relation is not
// an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, offerID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND offer_id = $2
	`, userID, offerID)
	return err
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, offerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND offer_id = $2)
	`, userID, offerID).Scan(&exists)
	return exists, err
}

// ListOfferIDs joins against offers so relations orphaned by an offer
// deletion read as absent rather than surfacing dangling ids.
func (r *FavoriteRepository) ListOfferIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.offer_id
		FROM favorites f
		JOIN offers o ON o.id = f.offer_id
		WHERE f.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
