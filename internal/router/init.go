package router

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/internal/application"
	pginfra "github.com/stayhub/rental-api/internal/infrastructure/postgres"
	handlers "github.com/stayhub/rental-api/internal/interface/http"
	"github.com/stayhub/rental-api/internal/interface/middleware"
	"github.com/stayhub/rental-api/internal/pipeline"
	"github.com/stayhub/rental-api/internal/router/modules"
	"github.com/stayhub/rental-api/pkg/helpers"
)

// Deps carries every external resource the modules need. All wiring is
// explicit; nothing reads from process-global state.
type Deps struct {
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Search *helpers.SearchBackend
	// RatingQueue is nil when rating recomputes run inline.
	RatingQueue application.RatingQueue
}

// InitModules builds the repositories, services and handlers and registers
// every feature module with the registry.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	offers := pginfra.NewOfferRepository(d.Pool)
	comments := pginfra.NewCommentRepository(d.Pool)
	favorites := pginfra.NewFavoriteRepository(d.Pool)

	offerSvc := application.NewOfferService(offers, comments, favorites, d.Logger, d.Search)
	commentSvc := application.NewCommentService(comments, offerSvc, d.RatingQueue, d.Logger)
	userSvc := application.NewUserService(users, d.JWT, d.Redis, d.Logger)

	verifier := middleware.NewTokenVerifier(d.JWT)
	offerLookup := pipeline.LookupFunc(func(ctx context.Context, id string) (pipeline.Resource, bool, error) {
		o, err := offers.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if o == nil {
			return nil, false, nil
		}
		return o, true, nil
	})

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger), verifier, d.Redis))
	r.Add(modules.NewOfferModule(
		handlers.NewOfferHandler(offerSvc, d.Logger),
		handlers.NewCommentHandler(commentSvc, d.Logger),
		verifier,
		offerLookup,
	))
}
