// Package escrow defines the boundary to the external on-chain escrow
// mechanism. The engine requests a deployment once a trade is agreed and
// observes settlement progress through events it may never receive.
package escrow

import (
	"context"

	"github.com/google/uuid"
)

// Phase is a settlement progress report from the bridge.
type Phase string

const (
	PhaseDeployed  Phase = "DEPLOYED"
	PhaseDeposited Phase = "DEPOSITED"
	PhaseFinalized Phase = "FINALIZED"
	PhaseFailed    Phase = "FAILED"
)

// Event is an asynchronous settlement notification from the bridge.
type Event struct {
	TradeID       uuid.UUID `json:"tradeId"`
	Phase         Phase     `json:"phase"`
	EscrowAddress *string   `json:"escrowAddress,omitempty"`
	TxHash        *string   `json:"txHash,omitempty"`
	Reason        *string   `json:"reason,omitempty"`
}

// DeployRequest asks the bridge to set up escrow for an agreed trade.
type DeployRequest struct {
	TradeID            uuid.UUID `json:"tradeId"`
	InitiatorWallet    string    `json:"initiatorWallet"`
	CounterpartyWallet string    `json:"counterpartyWallet"`
}

// Bridge is the outbound half of the escrow boundary.
type Bridge interface {
	RequestDeployment(ctx context.Context, req DeployRequest) error
}
