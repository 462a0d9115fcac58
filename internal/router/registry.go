package router

import (
	"github.com/gin-gonic/gin"

	"github.com/stayhub/rental-api/internal/pipeline"
	"github.com/stayhub/rental-api/internal/router/modules"
)

// Registry collects modules and mounts their route tables under /api.
// Registration validates every route's guard chain first, so a misordered
// chain fails startup instead of surfacing per request.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	exec        *pipeline.Executor
	middlewares []gin.HandlerFunc
	modules     []modules.Module
}

func NewRegistry(engine *gin.Engine, exec *pipeline.Executor) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api, exec: exec}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod modules.Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() error {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		for _, rt := range m.Routes() {
			if err := pipeline.ValidateChain(rt.Route); err != nil {
				return err
			}
			chain := make([]gin.HandlerFunc, 0, len(rt.Middlewares)+1)
			chain = append(chain, rt.Middlewares...)
			chain = append(chain, r.exec.Handle(rt.Route))
			r.API.Handle(rt.Method, rt.Path, chain...)
		}
	}
	return nil
}
