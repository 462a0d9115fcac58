package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/stayhub/rental-api/internal/pipeline"
)

// Route is a pipeline route plus the gin middlewares (rate limiters and the
// like) that run before its guard chain.
type Route struct {
	pipeline.Route
	Middlewares []gin.HandlerFunc
}

// Module describes a feature module as a declarative route table. Modules
// never touch the engine directly; the registry validates and mounts their
// routes.
type Module interface {
	Routes() []Route
}
