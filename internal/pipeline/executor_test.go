package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/stayhub/rental-api/internal/domain/entity"
	"github.com/stayhub/rental-api/pkg/apperr"
	"github.com/stayhub/rental-api/pkg/response"
	"github.com/stayhub/rental-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// traceGuard records its execution and then continues, halts or fails
// depending on how it is configured.
type traceGuard struct {
	name  string
	kind  Kind
	trace *[]string
	halt  *apperr.Error
	err   error
}

func (g *traceGuard) Kind() Kind { return g.kind }

func (g *traceGuard) Check(_ *gin.Context, _ *State) (Result, error) {
	*g.trace = append(*g.trace, g.name)
	if g.err != nil {
		return Continue(), g.err
	}
	if g.halt != nil {
		return Halt(g.halt), nil
	}
	return Continue(), nil
}

type fakeResource struct{ owner string }

func (r fakeResource) OwnedBy() string { return r.owner }

// fakeVerifier accepts tokens of the form "user:<id>".
type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (Identity, error) {
	if !strings.HasPrefix(token, "user:") {
		return Identity{}, errors.New("bad token")
	}
	return Identity{ID: strings.TrimPrefix(token, "user:"), Role: entity.RoleRegular}, nil
}

func serve(t *testing.T, rt Route, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	engine := gin.New()
	exec := NewExecutor(testLogger())
	engine.Handle(rt.Method, rt.Path, exec.Handle(rt))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var env response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGuardsRunInDeclarationOrder(t *testing.T) {
	var trace []string
	rt := Route{
		Method: http.MethodGet,
		Path:   "/t",
		Guards: []Guard{
			&traceGuard{name: "first", kind: KindValidateDTO, trace: &trace},
			&traceGuard{name: "second", kind: KindValidateID, trace: &trace},
			&traceGuard{name: "third", kind: KindAuth, trace: &trace},
		},
		Handler: func(c *gin.Context, _ *State) error {
			trace = append(trace, "handler")
			response.OK(c, http.StatusOK, nil, "ok")
			return nil
		},
	}

	w := serve(t, rt, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"first", "second", "third", "handler"}, trace)
}

func TestFirstHaltWinsAndStopsChain(t *testing.T) {
	var trace []string
	rt := Route{
		Method: http.MethodGet,
		Path:   "/t",
		Guards: []Guard{
			&traceGuard{name: "first", kind: KindValidateDTO, trace: &trace, halt: apperr.Validation("first failed", nil)},
			&traceGuard{name: "second", kind: KindValidateID, trace: &trace, halt: apperr.NotFound("thing", "x")},
		},
		Handler: func(c *gin.Context, _ *State) error {
			trace = append(trace, "handler")
			response.OK(c, http.StatusOK, nil, "ok")
			return nil
		},
	}

	w := serve(t, rt, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"first"}, trace)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "first failed", env.Message)
}

func TestGuardErrorBecomesGenericInternal(t *testing.T) {
	var trace []string
	rt := Route{
		Method: http.MethodGet,
		Path:   "/t",
		Guards: []Guard{
			&traceGuard{name: "broken", kind: KindExists, trace: &trace, err: errors.New("connection refused to db-internal-host:5432")},
		},
		Handler: func(c *gin.Context, _ *State) error {
			trace = append(trace, "handler")
			return nil
		},
	}

	w := serve(t, rt, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []string{"broken"}, trace)
	assert.NotContains(t, w.Body.String(), "db-internal-host")
	env := decodeEnvelope(t, w)
	assert.Equal(t, "internal server error", env.Message)
}

func TestHandlerErrorIsMapped(t *testing.T) {
	rt := Route{
		Method: http.MethodGet,
		Path:   "/t",
		Handler: func(_ *gin.Context, _ *State) error {
			return apperr.NotFound("offer", "abc")
		},
	}

	w := serve(t, rt, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerPanicBecomesInternal(t *testing.T) {
	rt := Route{
		Method: http.MethodGet,
		Path:   "/t",
		Handler: func(_ *gin.Context, _ *State) error {
			panic("boom")
		},
	}

	w := serve(t, rt, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestExactlyOneResponseWritten(t *testing.T) {
	rt := Route{
		Method: http.MethodGet,
		Path:   "/t",
		Guards: []Guard{
			&traceGuard{name: "halt", kind: KindAuth, trace: new([]string), halt: apperr.Unauthorized()},
		},
		Handler: func(c *gin.Context, _ *State) error {
			response.OK(c, http.StatusOK, nil, "should never run")
			return nil
		},
	}

	w := serve(t, rt, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// single JSON document in the body
	dec := json.NewDecoder(strings.NewReader(w.Body.String()))
	var first, second any
	assert.NoError(t, dec.Decode(&first))
	assert.Error(t, dec.Decode(&second))
}

func TestMissingCredentialsAnswerBeforeBodyValidation(t *testing.T) {
	validation.Init()
	type createDTO struct {
		Title string `json:"title" binding:"required,min=10"`
	}
	rt := Route{
		Method: http.MethodPost,
		Path:   "/offers",
		Guards: []Guard{
			Auth(fakeVerifier{}),
			ValidateDTO(func() any { return &createDTO{} }),
		},
		Handler: func(c *gin.Context, _ *State) error {
			response.OK(c, http.StatusCreated, nil, "created")
			return nil
		},
	}

	// no token and a body that would also fail validation: 401, not 400
	w := serve(t, rt, httptest.NewRequest(http.MethodPost, "/offers", strings.NewReader(`{"title":"x"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// same body behind a valid token reaches the body check
	req := httptest.NewRequest(http.MethodPost, "/offers", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Authorization", "Bearer user:alice")
	w = serve(t, rt, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func offerWriteRoute(lookup Lookup, sideEffects *int) Route {
	return Route{
		Method: http.MethodDelete,
		Path:   "/offers/:offerId",
		Guards: []Guard{
			ValidateID("offerId"),
			Auth(fakeVerifier{}),
			Exists("offer", "offerId", lookup),
			Owner(),
		},
		Handler: func(c *gin.Context, _ *State) error {
			*sideEffects++
			response.NoContent(c)
			return nil
		},
	}
}

func TestOwnershipMismatchIsForbiddenNotNotFound(t *testing.T) {
	lookup := LookupFunc(func(_ context.Context, id string) (Resource, bool, error) {
		return fakeResource{owner: "somebody-else"}, true, nil
	})
	var sideEffects int

	req := httptest.NewRequest(http.MethodDelete, "/offers/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)
	req.Header.Set("Authorization", "Bearer user:alice")
	w := serve(t, offerWriteRoute(lookup, &sideEffects), req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, sideEffects)
}

func TestMissingResourceIsNotFoundBeforeOwnership(t *testing.T) {
	lookup := LookupFunc(func(_ context.Context, id string) (Resource, bool, error) {
		return nil, false, nil
	})
	var sideEffects int

	req := httptest.NewRequest(http.MethodDelete, "/offers/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)
	req.Header.Set("Authorization", "Bearer user:alice")
	w := serve(t, offerWriteRoute(lookup, &sideEffects), req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, sideEffects)
}

func TestOwnerMatchReachesHandler(t *testing.T) {
	lookup := LookupFunc(func(_ context.Context, id string) (Resource, bool, error) {
		return fakeResource{owner: "alice"}, true, nil
	})
	var sideEffects int

	req := httptest.NewRequest(http.MethodDelete, "/offers/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)
	req.Header.Set("Authorization", "Bearer user:alice")
	w := serve(t, offerWriteRoute(lookup, &sideEffects), req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, sideEffects)
}

func TestInvalidIDRejectedBeforeLookup(t *testing.T) {
	lookupCalls := 0
	lookup := LookupFunc(func(_ context.Context, id string) (Resource, bool, error) {
		lookupCalls++
		return nil, false, nil
	})
	var sideEffects int

	req := httptest.NewRequest(http.MethodDelete, "/offers/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer user:alice")
	w := serve(t, offerWriteRoute(lookup, &sideEffects), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, lookupCalls)
	assert.Zero(t, sideEffects)
}

func TestValidateChain(t *testing.T) {
	handler := func(_ *gin.Context, _ *State) error { return nil }
	lookup := LookupFunc(func(_ context.Context, _ string) (Resource, bool, error) { return nil, false, nil })

	tests := []struct {
		name   string
		guards []Guard
		ok     bool
	}{
		{
			name:   "owner without auth",
			guards: []Guard{ValidateID("id"), Exists("offer", "id", lookup), Owner()},
			ok:     false,
		},
		{
			name:   "owner without exists",
			guards: []Guard{Auth(fakeVerifier{}), Owner()},
			ok:     false,
		},
		{
			name:   "exists without validate-id",
			guards: []Guard{Exists("offer", "id", lookup)},
			ok:     false,
		},
		{
			name:   "owner after auth and exists",
			guards: []Guard{ValidateID("id"), Auth(fakeVerifier{}), Exists("offer", "id", lookup), Owner()},
			ok:     true,
		},
		{
			name:   "empty chain",
			guards: nil,
			ok:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChain(Route{Method: http.MethodGet, Path: "/t", Guards: tt.guards, Handler: handler})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
