package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/domain/repository"
)

// CommentListLimit caps how many comments a single listing returns.
const CommentListLimit = 50

// RatingJob asks the rating worker to recompute one offer's rating.
type RatingJob struct {
	OfferID string `json:"offer_id"`
}

// RatingQueue publishes rating jobs to the background worker.
type RatingQueue interface {
	PublishJSON(ctx context.Context, payload any) error
}

// CommentService creates and lists comments and keeps the parent offer's
// rating and comment counter in step with the comment set.
type CommentService struct {
	Comments repository.CommentRepository
	Offers   *OfferService
	Queue    RatingQueue
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, offers *OfferService, queue RatingQueue, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Offers: offers, Queue: queue, Logger: logger}
}

// Create stores the comment, bumps the offer's comment counter and triggers
// a rating recompute. With a queue configured the recompute runs in the
// worker; otherwise, or when publishing fails, it runs inline.
func (s *CommentService) Create(ctx context.Context, c *entity.Comment) error {
	if err := s.Comments.Create(ctx, c); err != nil {
		return err
	}
	if err := s.Offers.Offers.IncrementComments(ctx, c.OfferID, 1); err != nil {
		return err
	}

	if s.Queue != nil {
		err := s.Queue.PublishJSON(ctx, RatingJob{OfferID: c.OfferID})
		if err == nil {
			return nil
		}
		s.Logger.WithError(err).WithField("offer_id", c.OfferID).Warn("rating job publish failed, recomputing inline")
	}

	_, err := s.Offers.UpdateRating(ctx, c.OfferID)
	return err
}

func (s *CommentService) ListByOffer(ctx context.Context, offerID string) ([]*entity.Comment, error) {
	return s.Comments.ListByOffer(ctx, offerID, CommentListLimit)
}
