package modules

import (
	"net/http"

	handlers "github.com/stayhub/rental-api/internal/interface/http"
	"github.com/stayhub/rental-api/internal/pipeline"
)

// OfferModule mounts the offer catalogue: listing, detail, mutation,
// premium-by-city, favorites, comments and search.
type OfferModule struct {
	Offers   *handlers.OfferHandler
	Comments *handlers.CommentHandler
	Verifier pipeline.TokenVerifier
	Lookup   pipeline.Lookup
}

func NewOfferModule(offers *handlers.OfferHandler, comments *handlers.CommentHandler, verifier pipeline.TokenVerifier, lookup pipeline.Lookup) *OfferModule {
	return &OfferModule{Offers: offers, Comments: comments, Verifier: verifier, Lookup: lookup}
}

func (m *OfferModule) Routes() []Route {
	exists := func() pipeline.Guard { return pipeline.Exists("offer", "offerId", m.Lookup) }

	return []Route{
		{
			Route: pipeline.Route{
				Method:  http.MethodGet,
				Path:    "/offers",
				Guards:  []pipeline.Guard{pipeline.OptionalAuth(m.Verifier)},
				Handler: m.Offers.List,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodPost,
				Path:   "/offers",
				Guards: []pipeline.Guard{
					pipeline.Auth(m.Verifier),
					pipeline.ValidateDTO(func() any { return &handlers.CreateOfferRequest{} }),
				},
				Handler: m.Offers.Create,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodGet,
				Path:   "/offers/:offerId",
				Guards: []pipeline.Guard{
					pipeline.ValidateID("offerId"),
					pipeline.OptionalAuth(m.Verifier),
					exists(),
				},
				Handler: m.Offers.GetByID,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodPatch,
				Path:   "/offers/:offerId",
				Guards: []pipeline.Guard{
					pipeline.Auth(m.Verifier),
					pipeline.ValidateID("offerId"),
					pipeline.ValidateDTO(func() any { return &handlers.UpdateOfferRequest{} }),
					exists(),
					pipeline.Owner(),
				},
				Handler: m.Offers.Update,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodDelete,
				Path:   "/offers/:offerId",
				Guards: []pipeline.Guard{
					pipeline.Auth(m.Verifier),
					pipeline.ValidateID("offerId"),
					exists(),
					pipeline.Owner(),
				},
				Handler: m.Offers.Delete,
			},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodGet,
				Path:    "/offers/premium/:city",
				Guards:  []pipeline.Guard{pipeline.OptionalAuth(m.Verifier)},
				Handler: m.Offers.PremiumByCity,
			},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodGet,
				Path:    "/offers/favorites",
				Guards:  []pipeline.Guard{pipeline.Auth(m.Verifier)},
				Handler: m.Offers.ListFavorites,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodPost,
				Path:   "/offers/:offerId/favorite",
				Guards: []pipeline.Guard{
					pipeline.Auth(m.Verifier),
					pipeline.ValidateID("offerId"),
					exists(),
				},
				Handler: m.Offers.AddFavorite,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodDelete,
				Path:   "/offers/:offerId/favorite",
				Guards: []pipeline.Guard{
					pipeline.Auth(m.Verifier),
					pipeline.ValidateID("offerId"),
					exists(),
				},
				Handler: m.Offers.DeleteFavorite,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodGet,
				Path:   "/offers/:offerId/comments",
				Guards: []pipeline.Guard{
					pipeline.ValidateID("offerId"),
					exists(),
				},
				Handler: m.Comments.ListByOffer,
			},
		},
		{
			Route: pipeline.Route{
				Method: http.MethodPost,
				Path:   "/offers/:offerId/comments",
				Guards: []pipeline.Guard{
					pipeline.Auth(m.Verifier),
					pipeline.ValidateID("offerId"),
					pipeline.ValidateDTO(func() any { return &handlers.CreateCommentRequest{} }),
					exists(),
				},
				Handler: m.Comments.Create,
			},
		},
		{
			Route: pipeline.Route{
				Method:  http.MethodGet,
				Path:    "/offers/search",
				Guards:  []pipeline.Guard{pipeline.OptionalAuth(m.Verifier)},
				Handler: m.Offers.Search,
			},
		},
	}
}
