package application

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/domain/repository"
	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/helpers"
)

var errSearchFailed = errors.New("search request rejected by the index")

const (
	// DefaultOfferLimit caps plain offer listings.
	DefaultOfferLimit = 60
	// PremiumOfferLimit caps the premium-by-city listing.
	PremiumOfferLimit = 3
)

// OfferService owns the offer aggregation logic: favorite enrichment,
// rating recomputation and favorite toggling, plus offer CRUD with comment
// cascade on delete.
type OfferService struct {
	Offers    repository.OfferRepository
	Comments  repository.CommentRepository
	Favorites repository.FavoriteRepository
	Logger    *logrus.Logger
	ES        *helpers.SearchBackend
}

func NewOfferService(offers repository.OfferRepository, comments repository.CommentRepository, favorites repository.FavoriteRepository, logger *logrus.Logger, es *helpers.SearchBackend) *OfferService {
	return &OfferService{
		Offers:    offers,
		Comments:  comments,
		Favorites: favorites,
		Logger:    logger,
		ES:        es,
	}
}

func (s *OfferService) Create(ctx context.Context, o *entity.Offer) error {
	if o.PostDate.IsZero() {
		o.PostDate = time.Now()
	}
	if err := s.Offers.Create(ctx, o); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"offer_id": o.ID, "title": o.Title}).Info("offer created")
	s.indexOffer(ctx, o)
	return nil
}

func (s *OfferService) List(ctx context.Context, limit int, userID string) ([]*entity.Offer, error) {
	if limit <= 0 || limit > DefaultOfferLimit {
		limit = DefaultOfferLimit
	}
	offers, err := s.Offers.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.ListWithFavorites(ctx, offers, userID)
}

func (s *OfferService) PremiumByCity(ctx context.Context, city entity.City, userID string) ([]*entity.Offer, error) {
	offers, err := s.Offers.ListPremiumByCity(ctx, city, PremiumOfferLimit)
	if err != nil {
		return nil, err
	}
	return s.ListWithFavorites(ctx, offers, userID)
}

func (s *OfferService) Update(ctx context.Context, o *entity.Offer) error {
	if err := s.Offers.Update(ctx, o); err != nil {
		return err
	}
	s.indexOffer(ctx, o)
	return nil
}

// Delete removes the offer and cascades its comments. Favorite relations
// referencing the offer are left behind and read as absent.
func (s *OfferService) Delete(ctx context.Context, offerID string) error {
	if err := s.Offers.Delete(ctx, offerID); err != nil {
		return err
	}
	deleted, err := s.Comments.DeleteByOffer(ctx, offerID)
	if err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"offer_id": offerID, "comments_deleted": deleted}).Info("offer deleted")
	s.deindexOffer(ctx, offerID)
	return nil
}

// ListWithFavorites stamps each offer's favorite flag for the given viewer.
// Anonymous viewers get favorite=false on every offer without touching the
// relation store. For a known viewer the relations are fetched in one bulk
// query and membership is tested against a set, so the cost is a single
// round trip regardless of list size.
func (s *OfferService) ListWithFavorites(ctx context.Context, offers []*entity.Offer, userID string) ([]*entity.Offer, error) {
	if userID == "" {
		for _, o := range offers {
			o.IsFavorite = false
		}
		return offers, nil
	}

	ids, err := s.Favorites.ListOfferIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	favored := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		favored[id] = struct{}{}
	}
	for _, o := range offers {
		_, ok := favored[o.ID]
		o.IsFavorite = ok
	}
	return offers, nil
}

// GetOneWithFavorite stamps a single offer's favorite flag with one
// existence probe for the exact (user, offer) pair.
func (s *OfferService) GetOneWithFavorite(ctx context.Context, o *entity.Offer, userID string) (*entity.Offer, error) {
	if userID == "" {
		o.IsFavorite = false
		return o, nil
	}
	fav, err := s.Favorites.Exists(ctx, userID, o.ID)
	if err != nil {
		return nil, err
	}
	o.IsFavorite = fav
	return o, nil
}

// UserFavorites returns the offers the user has favorited, all flagged true.
func (s *OfferService) UserFavorites(ctx context.Context, userID string) ([]*entity.Offer, error) {
	ids, err := s.Favorites.ListOfferIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	offers, err := s.Offers.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range offers {
		o.IsFavorite = true
	}
	return offers, nil
}

// AddFavorite records the relation, creating at most one row per pair, and
// returns the offer with its favorite flag forced true. A missing offer is a
// not-found error, consistent with the existence guard.
func (s *OfferService) AddFavorite(ctx context.Context, userID, offerID string) (*entity.Offer, error) {
	o, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("offer", offerID)
	}
	if err := s.Favorites.Add(ctx, &entity.Favorite{UserID: userID, OfferID: offerID}); err != nil {
		return nil, err
	}
	o.IsFavorite = true
	return o, nil
}

// DeleteFavorite removes the relation; removing one that does not exist is a
// success.
func (s *OfferService) DeleteFavorite(ctx context.Context, userID, offerID string) error {
	return s.Favorites.Remove(ctx, userID, offerID)
}

// UpdateRating recomputes the offer's rating as the arithmetic mean of its
// comment ratings, rounded to one decimal. With no comments the rating
// resets to 0. The value reflects the comment set at invocation time only.
func (s *OfferService) UpdateRating(ctx context.Context, offerID string) (float64, error) {
	comments, err := s.Comments.ListByOffer(ctx, offerID, 0)
	if err != nil {
		return 0, err
	}

	var rating float64
	if len(comments) > 0 {
		total := 0
		for _, c := range comments {
			total += c.Rating
		}
		rating = math.Round(float64(total)/float64(len(comments))*10) / 10
	}

	if err := s.Offers.SetRating(ctx, offerID, rating); err != nil {
		return 0, err
	}
	return rating, nil
}

// Search queries the offer index and resolves hits against the store,
// enriched with the viewer's favorite flags.
func (s *OfferService) Search(ctx context.Context, query, userID string) ([]*entity.Offer, error) {
	if s.ES == nil || s.ES.OffersIndex == "" {
		return []*entity.Offer{}, nil
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title", "description", "city"},
			},
		},
		"size":    DefaultOfferLimit,
		"_source": false,
	}
	b, _ := json.Marshal(body)

	req := esapi.SearchRequest{Index: []string{s.ES.OffersIndex}, Body: strings.NewReader(string(b))}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES.Client)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, apperr.Internal(errSearchFailed)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	offers, err := s.Offers.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.ListWithFavorites(ctx, offers, userID)
}

// indexOffer pushes the offer document to Elasticsearch. Indexing is best
// effort and never fails the write path.
func (s *OfferService) indexOffer(ctx context.Context, o *entity.Offer) {
	if s.ES == nil || s.ES.OffersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          o.ID,
		"title":       o.Title,
		"description": o.Description,
		"city":        o.City,
		"type":        o.Type,
		"price":       o.Price,
		"is_premium":  o.IsPremium,
		"post_date":   o.PostDate.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ES.OffersIndex, DocumentID: o.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES.Client)
	if err != nil {
		s.Logger.WithError(err).WithField("offer_id", o.ID).Warn("offer indexing failed")
		return
	}
	_ = res.Body.Close()
}

func (s *OfferService) deindexOffer(ctx context.Context, offerID string) {
	if s.ES == nil || s.ES.OffersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ES.OffersIndex, DocumentID: offerID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES.Client)
	if err != nil {
		s.Logger.WithError(err).WithField("offer_id", offerID).Warn("offer deindexing failed")
		return
	}
	_ = res.Body.Close()
}
