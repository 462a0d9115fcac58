package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (offer_id, user_id, text, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.OfferID, c.UserID, c.Text, c.Rating)

	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *CommentRepository) ListByOffer(ctx context.Context, offerID string, limit int) ([]*entity.Comment, error) {
	query := `
		SELECT id, offer_id, user_id, text, rating, created_at
		FROM comments
		WHERE offer_id = $1
		ORDER BY created_at DESC`
	args := []any{offerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.OfferID, &c.UserID, &c.Text, &c.Rating, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) DeleteByOffer(ctx context.Context, offerID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE offer_id = $1`, offerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
