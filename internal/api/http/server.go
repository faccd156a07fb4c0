// Package httpapi exposes the negotiation engine over HTTP: the trade
// resource, the action endpoint, the escrow event callback and the SSE
// stream. All errors cross this boundary as a stable {success,error}
// envelope; no internal detail leaks.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/trade-hub/trade-hub/internal/apperror"
	appNegotiation "github.com/trade-hub/trade-hub/internal/application/negotiation"
	appRegistry "github.com/trade-hub/trade-hub/internal/application/registry"
	appSettlement "github.com/trade-hub/trade-hub/internal/application/settlement"
	"github.com/trade-hub/trade-hub/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	registrySvc    *appRegistry.Service
	negotiationSvc *appNegotiation.Service
	settlementSvc  *appSettlement.Service
	sseHub         *sse.Hub
}

func NewServer(
	registrySvc *appRegistry.Service,
	negotiationSvc *appNegotiation.Service,
	settlementSvc *appSettlement.Service,
	sseHub *sse.Hub,
) *Server {
	return &Server{
		registrySvc:    registrySvc,
		negotiationSvc: negotiationSvc,
		settlementSvc:  settlementSvc,
		sseHub:         sseHub,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/trades", func(r chi.Router) {
			r.Post("/", s.createTrade)
			r.Get("/", s.listTrades)
			r.Get("/{tradeId}", s.getTrade)
			r.Post("/{tradeId}/actions", s.submitAction)
			r.Get("/{tradeId}/messages", s.getTradeMessages)
			r.Get("/{tradeId}/history", s.getTradeHistory)
		})
		r.Route("/escrow", func(r chi.Router) {
			r.Post("/events", s.escrowEvent)
		})
		r.Get("/stream", s.sseEndpoint)
	})

	return r
}

// Helpers

func respondData(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

func respondAppError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForKind(kind))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    string(kind),
			"message": apperror.Message(err),
		},
	})
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindStateConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
