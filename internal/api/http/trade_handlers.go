package httpapi

import (
	"net/http"
	"strconv"

	"github.com/trade-hub/trade-hub/internal/apperror"
	"github.com/trade-hub/trade-hub/internal/application/negotiation"
	"github.com/trade-hub/trade-hub/internal/application/registry"
	"github.com/trade-hub/trade-hub/internal/domain/escrow"
	"github.com/trade-hub/trade-hub/internal/domain/notification"
	"github.com/trade-hub/trade-hub/internal/domain/trade"
	"github.com/trade-hub/trade-hub/internal/domain/user"
)

func (s *Server) createTrade(w http.ResponseWriter, r *http.Request) {
	var req registry.CreateInput
	if err := decodeBody(r, &req); err != nil {
		respondAppError(w, apperror.Validationf("invalid request body: %v", err))
		return
	}
	view, err := s.registrySvc.Create(r.Context(), req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusCreated, view)
}

func (s *Server) listTrades(w http.ResponseWriter, r *http.Request) {
	var wallet *string
	if v := r.URL.Query().Get("wallet"); v != "" {
		wallet = &v
	}
	var status *trade.Status
	if v := r.URL.Query().Get("status"); v != "" {
		st := trade.Status(v)
		status = &st
	}
	limit, offset := parseLimitOffset(r, 50, 200)
	trades, err := s.registrySvc.List(r.Context(), wallet, status, limit, offset)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"trades": trades, "count": len(trades)})
}

func (s *Server) getTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "tradeId")
	if err != nil {
		respondAppError(w, apperror.Validationf("invalid tradeId"))
		return
	}
	view, err := s.registrySvc.GetForDisplay(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

func (s *Server) submitAction(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "tradeId")
	if err != nil {
		respondAppError(w, apperror.Validationf("invalid tradeId"))
		return
	}
	var req negotiation.ActionRequest
	if err := decodeBody(r, &req); err != nil {
		respondAppError(w, apperror.Validationf("invalid request body: %v", err))
		return
	}
	view, err := s.negotiationSvc.Submit(r.Context(), id, req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

func (s *Server) getTradeMessages(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "tradeId")
	if err != nil {
		respondAppError(w, apperror.Validationf("invalid tradeId"))
		return
	}
	view, err := s.registrySvc.GetWithMessages(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"tradeId": id, "messages": view.Messages})
}

func (s *Server) getTradeHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "tradeId")
	if err != nil {
		respondAppError(w, apperror.Validationf("invalid tradeId"))
		return
	}
	view, err := s.registrySvc.GetForDisplay(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"tradeId": id, "history": view.History})
}

func (s *Server) escrowEvent(w http.ResponseWriter, r *http.Request) {
	var ev escrow.Event
	if err := decodeBody(r, &ev); err != nil {
		respondAppError(w, apperror.Validationf("invalid request body: %v", err))
		return
	}
	t, err := s.settlementSvc.HandleEvent(r.Context(), ev)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"tradeId": t.TradeID, "status": t.Status})
}

func (s *Server) sseEndpoint(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		respondAppError(w, apperror.Validationf("client_id is required"))
		return
	}
	var wallet *string
	if v := r.URL.Query().Get("wallet"); v != "" {
		normalized := user.NormalizeWallet(v)
		wallet = &normalized
	}
	client := notification.NewSSEClient(clientID, wallet)
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(clientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, ok := w.(http.Flusher)
	if !ok {
		return
	}
	// Send an initial comment to flush headers and keep the connection alive.
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case msg := <-client.MessageChan:
			if msg == nil {
				return
			}
			payload, _ := msg.Data.MarshalJSON()
			_, _ = w.Write([]byte("event: " + msg.Event + "\n"))
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(payload)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func parseLimitOffset(r *http.Request, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil {
			offset = o
		}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
