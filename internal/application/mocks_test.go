package application

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/stayhub/rental-api/internal/domain/entity"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Create(ctx context.Context, o *entity.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Offer), args.Error(1)
}
func (m *MockOfferRepository) List(ctx context.Context, limit int) ([]*entity.Offer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Offer), args.Error(1)
}
func (m *MockOfferRepository) ListPremiumByCity(ctx context.Context, city entity.City, limit int) ([]*entity.Offer, error) {
	args := m.Called(ctx, city, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Offer), args.Error(1)
}
func (m *MockOfferRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Offer, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Offer), args.Error(1)
}
func (m *MockOfferRepository) Update(ctx context.Context, o *entity.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOfferRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOfferRepository) SetRating(ctx context.Context, id string, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}
func (m *MockOfferRepository) IncrementComments(ctx context.Context, id string, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCommentRepository) ListByOffer(ctx context.Context, offerID string, limit int) ([]*entity.Comment, error) {
	args := m.Called(ctx, offerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}
func (m *MockCommentRepository) DeleteByOffer(ctx context.Context, offerID string) (int64, error) {
	args := m.Called(ctx, offerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) Add(ctx context.Context, f *entity.Favorite) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, offerID string) error {
	args := m.Called(ctx, userID, offerID)
	return args.Error(0)
}
func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, offerID string) (bool, error) {
	args := m.Called(ctx, userID, offerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockFavoriteRepository) ListOfferIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockRatingQueue struct{ mock.Mock }

func (m *MockRatingQueue) PublishJSON(ctx context.Context, payload any) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
