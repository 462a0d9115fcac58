package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/application"
	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/internal/pipeline"
	"github.com/stayhub/rental-api/pkg/response"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required,min=5,max=1024"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
}

type commentView struct {
	ID        string    `json:"id"`
	OfferID   string    `json:"offer_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func newCommentView(cm *entity.Comment) commentView {
	return commentView{ID: cm.ID, OfferID: cm.OfferID, UserID: cm.UserID, Text: cm.Text, Rating: cm.Rating, CreatedAt: cm.CreatedAt}
}

func (h *CommentHandler) Create(c *gin.Context, st *pipeline.State) error {
	req := st.Body.(*CreateCommentRequest)
	cm := &entity.Comment{
		OfferID: resourceOffer(st).ID,
		UserID:  st.UserID(),
		Text:    req.Text,
		Rating:  req.Rating,
	}
	if err := h.Svc.Create(c.Request.Context(), cm); err != nil {
		return err
	}
	response.OK(c, http.StatusCreated, newCommentView(cm), "comment created")
	return nil
}

func (h *CommentHandler) ListByOffer(c *gin.Context, st *pipeline.State) error {
	comments, err := h.Svc.ListByOffer(c.Request.Context(), resourceOffer(st).ID)
	if err != nil {
		return err
	}
	out := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		out = append(out, newCommentView(cm))
	}
	response.OK(c, http.StatusOK, out, "comments")
	return nil
}
