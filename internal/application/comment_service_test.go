package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/stayhub/rental-api/internal/domain/entity"
)

func newCommentService(queue RatingQueue) (*CommentService, *MockOfferRepository, *MockCommentRepository) {
	offerRepo := new(MockOfferRepository)
	commentRepo := new(MockCommentRepository)
	offerSvc := NewOfferService(offerRepo, commentRepo, new(MockFavoriteRepository), testLogger(), nil)
	svc := NewCommentService(commentRepo, offerSvc, queue, testLogger())
	return svc, offerRepo, commentRepo
}

func TestCreateCommentRecomputesInline(t *testing.T) {
	svc, offers, comments := newCommentService(nil)

	cm := &entity.Comment{OfferID: "o1", UserID: "u1", Text: "lovely place", Rating: 5}
	comments.On("Create", mock.Anything, cm).Return(nil)
	offers.On("IncrementComments", mock.Anything, "o1", 1).Return(nil)
	comments.On("ListByOffer", mock.Anything, "o1", 0).Return([]*entity.Comment{{Rating: 5}}, nil)
	offers.On("SetRating", mock.Anything, "o1", 5.0).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), cm))
	offers.AssertExpectations(t)
}

func TestCreateCommentPublishesRatingJob(t *testing.T) {
	queue := new(MockRatingQueue)
	svc, offers, comments := newCommentService(queue)

	cm := &entity.Comment{OfferID: "o1", UserID: "u1", Text: "lovely place", Rating: 4}
	comments.On("Create", mock.Anything, cm).Return(nil)
	offers.On("IncrementComments", mock.Anything, "o1", 1).Return(nil)
	queue.On("PublishJSON", mock.Anything, RatingJob{OfferID: "o1"}).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), cm))
	// recompute is deferred to the worker
	offers.AssertNotCalled(t, "SetRating", mock.Anything, mock.Anything, mock.Anything)
	queue.AssertExpectations(t)
}

func TestCreateCommentFallsBackOnPublishError(t *testing.T) {
	queue := new(MockRatingQueue)
	svc, offers, comments := newCommentService(queue)

	cm := &entity.Comment{OfferID: "o1", UserID: "u1", Text: "lovely place", Rating: 3}
	comments.On("Create", mock.Anything, cm).Return(nil)
	offers.On("IncrementComments", mock.Anything, "o1", 1).Return(nil)
	queue.On("PublishJSON", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	comments.On("ListByOffer", mock.Anything, "o1", 0).Return([]*entity.Comment{{Rating: 3}}, nil)
	offers.On("SetRating", mock.Anything, "o1", 3.0).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), cm))
	offers.AssertExpectations(t)
}

func TestListByOfferUsesListLimit(t *testing.T) {
	svc, _, comments := newCommentService(nil)

	comments.On("ListByOffer", mock.Anything, "o1", CommentListLimit).Return([]*entity.Comment{}, nil)

	out, err := svc.ListByOffer(context.Background(), "o1")
	assert.NoError(t, err)
	assert.Empty(t, out)
	comments.AssertExpectations(t)
}
