package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/application"
	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/pipeline"
	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/response"
)

type OfferHandler struct {
	Offers *application.OfferService
	Logger *logrus.Logger
}

func NewOfferHandler(offers *application.OfferService, logger *logrus.Logger) *OfferHandler {
	return &OfferHandler{Offers: offers, Logger: logger}
}

type CreateOfferRequest struct {
	Title       string    `json:"title" binding:"required,min=10,max=100"`
	Description string    `json:"description" binding:"required,min=20,max=1024"`
	City        string    `json:"city" binding:"required,oneof=Paris Cologne Brussels Amsterdam Hamburg Dusseldorf"`
	PreviewPath string    `json:"preview_path" binding:"required"`
	ImagePaths  []string  `json:"image_paths" binding:"required,len=6"`
	IsPremium   bool      `json:"is_premium"`
	Type        string    `json:"type" binding:"required,oneof=apartment house room hotel"`
	Rooms       int       `json:"rooms" binding:"required,gte=1,lte=8"`
	Guests      int       `json:"guests" binding:"required,gte=1,lte=10"`
	Price       int       `json:"price" binding:"required,gte=100,lte=100000"`
	Amenities   []string  `json:"amenities" binding:"required,min=1"`
	Latitude    *float64  `json:"latitude" binding:"required,latitude"`
	Longitude   *float64  `json:"longitude" binding:"required,longitude"`
	PostDate    time.Time `json:"post_date" binding:"omitempty"`
}

// UpdateOfferRequest is patch-shaped; only present fields are applied.
type UpdateOfferRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=10,max=100"`
	Description *string  `json:"description" binding:"omitempty,min=20,max=1024"`
	City        *string  `json:"city" binding:"omitempty,oneof=Paris Cologne Brussels Amsterdam Hamburg Dusseldorf"`
	PreviewPath *string  `json:"preview_path" binding:"omitempty"`
	ImagePaths  []string `json:"image_paths" binding:"omitempty,len=6"`
	IsPremium   *bool    `json:"is_premium"`
	Type        *string  `json:"type" binding:"omitempty,oneof=apartment house room hotel"`
	Rooms       *int     `json:"rooms" binding:"omitempty,gte=1,lte=8"`
	Guests      *int     `json:"guests" binding:"omitempty,gte=1,lte=10"`
	Price       *int     `json:"price" binding:"omitempty,gte=100,lte=100000"`
	Amenities   []string `json:"amenities" binding:"omitempty,min=1"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
}

type offerListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	City          string    `json:"city"`
	PostDate      time.Time `json:"post_date"`
	PreviewPath   string    `json:"preview_path"`
	IsPremium     bool      `json:"is_premium"`
	IsFavorite    bool      `json:"is_favorite"`
	Rating        float64   `json:"rating"`
	Type          string    `json:"type"`
	Price         int       `json:"price"`
	CommentsCount int       `json:"comments_count"`
}

type offerView struct {
	offerListItem
	Description string   `json:"description"`
	ImagePaths  []string `json:"image_paths"`
	Rooms       int      `json:"rooms"`
	Guests      int      `json:"guests"`
	Amenities   []string `json:"amenities"`
	OwnerID     string   `json:"owner_id"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
}

func newOfferListItem(o *entity.Offer) offerListItem {
	return offerListItem{
		ID:            o.ID,
		Title:         o.Title,
		City:          string(o.City),
		PostDate:      o.PostDate,
		PreviewPath:   o.PreviewPath,
		IsPremium:     o.IsPremium,
		IsFavorite:    o.IsFavorite,
		Rating:        o.Rating,
		Type:          string(o.Type),
		Price:         o.Price,
		CommentsCount: o.CommentsCount,
	}
}

func newOfferView(o *entity.Offer) offerView {
	return offerView{
		offerListItem: newOfferListItem(o),
		Description:   o.Description,
		ImagePaths:    o.ImagePaths,
		Rooms:         o.Rooms,
		Guests:        o.Guests,
		Amenities:     o.Amenities,
		OwnerID:       o.OwnerID,
		Latitude:      o.Coordinates.Latitude,
		Longitude:     o.Coordinates.Longitude,
	}
}

func newOfferList(offers []*entity.Offer) []offerListItem {
	out := make([]offerListItem, 0, len(offers))
	for _, o := range offers {
		out = append(out, newOfferListItem(o))
	}
	return out
}

// resourceOffer reads the offer cached by the existence guard.
func resourceOffer(st *pipeline.State) *entity.Offer {
	return st.Resource.(*entity.Offer)
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

func (h *OfferHandler) Create(c *gin.Context, st *pipeline.State) error {
	req := st.Body.(*CreateOfferRequest)
	o := &entity.Offer{
		Title:       req.Title,
		Description: req.Description,
		City:        entity.City(req.City),
		PostDate:    req.PostDate,
		PreviewPath: req.PreviewPath,
		ImagePaths:  req.ImagePaths,
		IsPremium:   req.IsPremium,
		Type:        entity.HousingType(req.Type),
		Rooms:       req.Rooms,
		Guests:      req.Guests,
		Price:       req.Price,
		Amenities:   req.Amenities,
		OwnerID:     st.UserID(),
		Coordinates: entity.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude},
	}
	if err := h.Offers.Create(c.Request.Context(), o); err != nil {
		return err
	}
	response.OK(c, http.StatusCreated, newOfferView(o), "offer created")
	return nil
}

func (h *OfferHandler) List(c *gin.Context, st *pipeline.State) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := parsePositiveInt(raw)
		if err != nil {
			return apperr.Validation("limit must be a positive integer", map[string]string{"limit": "must be a positive integer"})
		}
		limit = n
	}
	offers, err := h.Offers.List(c.Request.Context(), limit, st.UserID())
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, newOfferList(offers), "offers")
	return nil
}

func (h *OfferHandler) GetByID(c *gin.Context, st *pipeline.State) error {
	o, err := h.Offers.GetOneWithFavorite(c.Request.Context(), resourceOffer(st), st.UserID())
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, newOfferView(o), "offer")
	return nil
}

func (h *OfferHandler) Update(c *gin.Context, st *pipeline.State) error {
	req := st.Body.(*UpdateOfferRequest)
	o := resourceOffer(st)

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.City != nil {
		o.City = entity.City(*req.City)
	}
	if req.PreviewPath != nil {
		o.PreviewPath = *req.PreviewPath
	}
	if req.ImagePaths != nil {
		o.ImagePaths = req.ImagePaths
	}
	if req.IsPremium != nil {
		o.IsPremium = *req.IsPremium
	}
	if req.Type != nil {
		o.Type = entity.HousingType(*req.Type)
	}
	if req.Rooms != nil {
		o.Rooms = *req.Rooms
	}
	if req.Guests != nil {
		o.Guests = *req.Guests
	}
	if req.Price != nil {
		o.Price = *req.Price
	}
	if req.Amenities != nil {
		o.Amenities = req.Amenities
	}
	if req.Latitude != nil {
		o.Coordinates.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		o.Coordinates.Longitude = *req.Longitude
	}

	if err := h.Offers.Update(c.Request.Context(), o); err != nil {
		return err
	}
	response.OK(c, http.StatusOK, newOfferView(o), "offer updated")
	return nil
}

func (h *OfferHandler) Delete(c *gin.Context, st *pipeline.State) error {
	if err := h.Offers.Delete(c.Request.Context(), resourceOffer(st).ID); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

func (h *OfferHandler) PremiumByCity(c *gin.Context, st *pipeline.State) error {
	city, ok := entity.ParseCity(c.Param("city"))
	if !ok {
		return apperr.Validation(c.Param("city")+" is not a known city", map[string]string{"city": "must be one of the supported cities"})
	}
	offers, err := h.Offers.PremiumByCity(c.Request.Context(), city, st.UserID())
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, newOfferList(offers), "premium offers")
	return nil
}

func (h *OfferHandler) ListFavorites(c *gin.Context, st *pipeline.State) error {
	offers, err := h.Offers.UserFavorites(c.Request.Context(), st.UserID())
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, newOfferList(offers), "favorite offers")
	return nil
}

func (h *OfferHandler) AddFavorite(c *gin.Context, st *pipeline.State) error {
	o, err := h.Offers.AddFavorite(c.Request.Context(), st.UserID(), c.Param("offerId"))
	if err != nil {
		return err
	}
	response.OK(c, http.StatusCreated, newOfferView(o), "offer added to favorites")
	return nil
}

func (h *OfferHandler) DeleteFavorite(c *gin.Context, st *pipeline.State) error {
	if err := h.Offers.DeleteFavorite(c.Request.Context(), st.UserID(), c.Param("offerId")); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

func (h *OfferHandler) Search(c *gin.Context, st *pipeline.State) error {
	q := c.Query("q")
	if q == "" {
		return apperr.Validation("q is required", map[string]string{"q": "must not be empty"})
	}
	offers, err := h.Offers.Search(c.Request.Context(), q, st.UserID())
	if err != nil {
		return err
	}
	response.OK(c, http.StatusOK, newOfferList(offers), "search results")
	return nil
}
