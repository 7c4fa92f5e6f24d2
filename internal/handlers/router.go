// Package handlers routes API Gateway events to the API's HTTP handlers.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/EthM370/test-api-lambdas/internal/config"
	"github.com/EthM370/test-api-lambdas/internal/models"
	"github.com/EthM370/test-api-lambdas/internal/utils"
)

// corsMaxAge is how long browsers may cache a preflight response, in seconds.
const corsMaxAge = 300

// HandlerFunc is a route handler that may fail. A returned error becomes a 502 response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP implements http.Handler.
func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := f(w, r); err != nil {
		reportError(w, r, err)
	}
}

// Route registers an additional handler on the router.
type Route struct {
	Pattern string
	Handler HandlerFunc
}

// NewRouter builds the API's handler: the healthz route plus routes, behind the CORS policy.
// Unknown paths get the mux's 404 and wrong methods its 405.
func NewRouter(cfg *config.Config, routes ...Route) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(HealthzPattern, HandlerFunc(Healthz))
	for _, route := range routes {
		mux.Handle(route.Pattern, route.Handler)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"authorization"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
	return c.Handler(mux)
}

type errorSlotKey struct{}

// errorSlot receives the error of a route served during a gateway dispatch, along with
// the headers the route had set when it failed.
type errorSlot struct {
	err    error
	header http.Header
}

func withErrorSlot(ctx context.Context) (context.Context, *errorSlot) {
	slot := &errorSlot{}
	return context.WithValue(ctx, errorSlotKey{}, slot), slot
}

// reportError hands err to the enclosing dispatch, or answers with a 502 itself when there is none.
func reportError(w http.ResponseWriter, r *http.Request, err error) {
	if slot, ok := r.Context().Value(errorSlotKey{}).(*errorSlot); ok {
		slot.err = err
		slot.header = w.Header().Clone()
		return
	}

	logError(utils.LoggerFromContext(r.Context()), err)
	_ = writeJSON(w, http.StatusBadGateway, models.MessageResponse{Message: models.InternalErrorMessage})
}

func logError(logger *zap.Logger, err error) {
	logger.Info("An error occurred and bubbled up", utils.String("error", fmt.Sprintf("%+v", err)))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode response")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
