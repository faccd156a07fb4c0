// Package escrow provides the outbound bridge implementations: an HTTP
// bridge posting deployment requests to the external contract orchestrator,
// and a noop bridge for environments without one.
package escrow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	domainEscrow "github.com/trade-hub/trade-hub/internal/domain/escrow"
)

// HTTPBridge posts deployment requests to a configured endpoint. Settlement
// progress comes back separately through the events endpoint.
type HTTPBridge struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

func NewHTTPBridge(endpoint string, logger zerolog.Logger) *HTTPBridge {
	return &HTTPBridge{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger.With().Str("service", "escrow-bridge").Logger(),
	}
}

func (b *HTTPBridge) RequestDeployment(ctx context.Context, req domainEscrow.DeployRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode deploy request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := b.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("deploy request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("deploy request rejected: %s", resp.Status)
	}
	b.logger.Info().Str("tradeId", req.TradeID.String()).Msg("escrow deployment requested")
	return nil
}

// NoopBridge accepts deployment requests without doing anything. Used when
// no bridge endpoint is configured; settlement events can still be injected
// manually.
type NoopBridge struct {
	logger zerolog.Logger
}

func NewNoopBridge(logger zerolog.Logger) *NoopBridge {
	return &NoopBridge{logger: logger.With().Str("service", "escrow-bridge").Logger()}
}

func (b *NoopBridge) RequestDeployment(ctx context.Context, req domainEscrow.DeployRequest) error {
	b.logger.Info().Str("tradeId", req.TradeID.String()).Msg("no bridge endpoint configured, skipping escrow deployment")
	return nil
}
