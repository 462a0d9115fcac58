package pipeline

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/response"
)

// HandlerFunc is the terminal step of a route. It reads accumulated State,
// writes its own success response, and returns an error instead of writing
// when the request fails.
type HandlerFunc func(c *gin.Context, st *State) error

// Route binds a method and path to an ordered guard chain and a handler.
// Routes are built once at startup and never mutated afterwards.
type Route struct {
	Method  string
	Path    string
	Guards  []Guard
	Handler HandlerFunc
}

// ValidateChain enforces guard ordering contracts at registration time:
// an ownership guard must be preceded by both an auth guard and an existence
// guard, and an existence guard must be preceded by an id-format guard.
// Composing a route that breaks these rules is a configuration error, not a
// request-time error.
func ValidateChain(rt Route) error {
	seen := map[Kind]bool{}
	for _, g := range rt.Guards {
		switch g.Kind() {
		case KindExists:
			if !seen[KindValidateID] {
				return fmt.Errorf("route %s %s: exists guard requires a validate-id guard earlier in the chain", rt.Method, rt.Path)
			}
		case KindOwner:
			if !seen[KindAuth] {
				return fmt.Errorf("route %s %s: owner guard requires an auth guard earlier in the chain", rt.Method, rt.Path)
			}
			if !seen[KindExists] {
				return fmt.Errorf("route %s %s: owner guard requires an exists guard earlier in the chain", rt.Method, rt.Path)
			}
		}
		seen[g.Kind()] = true
	}
	return nil
}

// Executor turns a Route into a single gin handler that runs the guard chain
// in declaration order with exactly-once response semantics: the first Halt
// wins, later guards and the handler never run after it, and any unexpected
// guard or handler failure is collapsed into one generic internal error.
type Executor struct {
	log *logrus.Logger
}

func NewExecutor(log *logrus.Logger) *Executor {
	return &Executor{log: log}
}

func (e *Executor) Handle(rt Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				e.log.WithFields(logrus.Fields{
					"method": rt.Method,
					"path":   rt.Path,
					"panic":  rec,
				}).Error("pipeline panicked")
				if !c.Writer.Written() {
					response.Fail(c, apperr.Internal(fmt.Errorf("panic: %v", rec)))
				}
			}
		}()

		st := &State{}
		for _, g := range rt.Guards {
			res, err := g.Check(c, st)
			if err != nil {
				e.log.WithError(err).WithFields(logrus.Fields{
					"method": rt.Method,
					"path":   rt.Path,
					"guard":  g.Kind().String(),
				}).Error("guard failed")
				response.Fail(c, apperr.Internal(err))
				return
			}
			if res.Halted() {
				response.Fail(c, res.Err())
				return
			}
		}

		if err := rt.Handler(c, st); err != nil {
			ae := apperr.From(err)
			if ae.Kind() == apperr.KindInternal {
				e.log.WithError(err).WithFields(logrus.Fields{
					"method": rt.Method,
					"path":   rt.Path,
				}).Error("handler failed")
			}
			response.Fail(c, ae)
		}
	}
}
