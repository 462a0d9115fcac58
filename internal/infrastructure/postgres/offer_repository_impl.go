package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/domain/repository"
)

const offerColumns = `
	id, title, description, city, post_date, preview_path, image_paths,
	is_premium, rating, housing_type, rooms, guests, price, amenities,
	owner_id, comments_count, latitude, longitude, created_at, updated_at`

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

func (r *OfferRepository) Create(ctx context.Context, o *entity.Offer) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO offers (
			title, description, city, post_date, preview_path, image_paths,
			is_premium, rating, housing_type, rooms, guests, price, amenities,
			owner_id, latitude, longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, comments_count, created_at, updated_at
	`, o.Title, o.Description, o.City, o.PostDate, o.PreviewPath, o.ImagePaths,
		o.IsPremium, o.Rating, o.Type, o.Rooms, o.Guests, o.Price, o.Amenities,
		o.OwnerID, o.Coordinates.Latitude, o.Coordinates.Longitude)

	return row.Scan(&o.ID, &o.CommentsCount, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OfferRepository) List(ctx context.Context, limit int) ([]*entity.Offer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+offerColumns+`
		FROM offers
		ORDER BY post_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOffers(rows)
}

func (r *OfferRepository) ListPremiumByCity(ctx context.Context, city entity.City, limit int) ([]*entity.Offer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+offerColumns+`
		FROM offers
		WHERE city = $1 AND is_premium
		ORDER BY post_date DESC
		LIMIT $2
	`, city, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOffers(rows)
}

func (r *OfferRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Offer, error) {
	if len(ids) == 0 {
		return []*entity.Offer{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+offerColumns+`
		FROM offers
		WHERE id = ANY($1)
		ORDER BY post_date DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOffers(rows)
}

func (r *OfferRepository) Update(ctx context.Context, o *entity.Offer) error {
	o.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE offers
		SET title = $1, description = $2, city = $3, post_date = $4,
		    preview_path = $5, image_paths = $6, is_premium = $7,
		    housing_type = $8, rooms = $9, guests = $10, price = $11,
		    amenities = $12, latitude = $13, longitude = $14, updated_at = $15
		WHERE id = $16
	`, o.Title, o.Description, o.City, o.PostDate, o.PreviewPath, o.ImagePaths,
		o.IsPremium, o.Type, o.Rooms, o.Guests, o.Price, o.Amenities,
		o.Coordinates.Latitude, o.Coordinates.Longitude, o.UpdatedAt, o.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	return err
}

func (r *OfferRepository) SetRating(ctx context.Context, id string, rating float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE offers SET rating = $1, updated_at = now() WHERE id = $2
	`, rating, id)
	return err
}

func (r *OfferRepository) IncrementComments(ctx context.Context, id string, delta int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE offers SET comments_count = comments_count + $1, updated_at = now() WHERE id = $2
	`, delta, id)
	return err
}

func scanOffer(row pgx.Row) (*entity.Offer, error) {
	o := &entity.Offer{}
	err := row.Scan(&o.ID, &o.Title, &o.Description, &o.City, &o.PostDate,
		&o.PreviewPath, &o.ImagePaths, &o.IsPremium, &o.Rating, &o.Type,
		&o.Rooms, &o.Guests, &o.Price, &o.Amenities, &o.OwnerID,
		&o.CommentsCount, &o.Coordinates.Latitude, &o.Coordinates.Longitude,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanOffers(rows pgx.Rows) ([]*entity.Offer, error) {
	offers := []*entity.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

var _ repository.OfferRepository = (*OfferRepository)(nil)
