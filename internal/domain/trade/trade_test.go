package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-hub/trade-hub/internal/apperror"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Action
		wantErr bool
	}{
		{name: "counteroffer", raw: "counteroffer", want: ActionCounteroffer},
		{name: "accept", raw: "accept", want: ActionAccept},
		{name: "reject", raw: "reject", want: ActionReject},
		{name: "cancel", raw: "cancel", want: ActionCancel},
		{name: "message", raw: "message", want: ActionMessage},
		{name: "empty", raw: "", wantErr: true},
		{name: "unknown", raw: "approve", wantErr: true},
		{name: "wrong case", raw: "Accept", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrade_RoleOf(t *testing.T) {
	initiator := uuid.New()
	counterparty := uuid.New()
	tr := &Trade{InitiatorID: initiator, CounterpartyID: counterparty}

	role, ok := tr.RoleOf(initiator)
	assert.True(t, ok)
	assert.Equal(t, SideInitiator, role)

	role, ok = tr.RoleOf(counterparty)
	assert.True(t, ok)
	assert.Equal(t, SideCounterparty, role)

	_, ok = tr.RoleOf(uuid.New())
	assert.False(t, ok)
}

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusFinalized, StatusCanceled, StatusRejected}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), string(s))
	}

	open := []Status{StatusPending, StatusCountered, StatusAgreed, StatusEscrowDeployed, StatusDeposited}
	for _, s := range open {
		assert.False(t, s.Terminal(), string(s))
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		current  Status
		action   Action
		role     Side
		want     Status
		wantKind apperror.Kind
	}{
		{name: "counteroffer pending", current: StatusPending, action: ActionCounteroffer, role: SideCounterparty, want: StatusCountered},
		{name: "counteroffer countered", current: StatusCountered, action: ActionCounteroffer, role: SideCounterparty, want: StatusCountered},
		{name: "accept pending", current: StatusPending, action: ActionAccept, role: SideCounterparty, want: StatusAgreed},
		{name: "accept countered", current: StatusCountered, action: ActionAccept, role: SideCounterparty, want: StatusAgreed},
		{name: "reject pending", current: StatusPending, action: ActionReject, role: SideCounterparty, want: StatusRejected},
		{name: "reject countered", current: StatusCountered, action: ActionReject, role: SideCounterparty, want: StatusRejected},
		{name: "cancel pending", current: StatusPending, action: ActionCancel, role: SideInitiator, want: StatusCanceled},
		{name: "cancel countered", current: StatusCountered, action: ActionCancel, role: SideInitiator, want: StatusCanceled},
		{name: "cancel agreed", current: StatusAgreed, action: ActionCancel, role: SideInitiator, want: StatusCanceled},
		{name: "cancel escrow deployed", current: StatusEscrowDeployed, action: ActionCancel, role: SideInitiator, want: StatusCanceled},
		{name: "message keeps status", current: StatusCountered, action: ActionMessage, role: SideInitiator, want: StatusCountered},
		{name: "message on agreed", current: StatusAgreed, action: ActionMessage, role: SideCounterparty, want: StatusAgreed},

		{name: "initiator cannot counteroffer", current: StatusPending, action: ActionCounteroffer, role: SideInitiator, wantKind: apperror.KindForbidden},
		{name: "initiator cannot accept", current: StatusCountered, action: ActionAccept, role: SideInitiator, wantKind: apperror.KindForbidden},
		{name: "initiator cannot reject", current: StatusPending, action: ActionReject, role: SideInitiator, wantKind: apperror.KindForbidden},
		{name: "counterparty cannot cancel", current: StatusPending, action: ActionCancel, role: SideCounterparty, wantKind: apperror.KindForbidden},

		{name: "counteroffer after agreed", current: StatusAgreed, action: ActionCounteroffer, role: SideCounterparty, wantKind: apperror.KindStateConflict},
		{name: "accept twice", current: StatusAgreed, action: ActionAccept, role: SideCounterparty, wantKind: apperror.KindStateConflict},
		{name: "accept finalized", current: StatusFinalized, action: ActionAccept, role: SideCounterparty, wantKind: apperror.KindStateConflict},
		{name: "reject after agreed", current: StatusAgreed, action: ActionReject, role: SideCounterparty, wantKind: apperror.KindStateConflict},
		{name: "cancel finalized", current: StatusFinalized, action: ActionCancel, role: SideInitiator, wantKind: apperror.KindStateConflict},
		{name: "cancel canceled", current: StatusCanceled, action: ActionCancel, role: SideInitiator, wantKind: apperror.KindStateConflict},
		{name: "message on rejected", current: StatusRejected, action: ActionMessage, role: SideInitiator, wantKind: apperror.KindStateConflict},
		{name: "message on canceled", current: StatusCanceled, action: ActionMessage, role: SideCounterparty, wantKind: apperror.KindStateConflict},
		{name: "message on finalized", current: StatusFinalized, action: ActionMessage, role: SideInitiator, wantKind: apperror.KindStateConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.action, tt.role)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				assert.Equal(t, tt.current, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Role gating is checked before status gating: a forbidden actor on a frozen
// trade still gets Forbidden, not StateConflict.
func TestTransition_RoleGateFirst(t *testing.T) {
	_, err := Transition(StatusFinalized, ActionAccept, SideInitiator)
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestTransition_TerminalStatesAdmitNothing(t *testing.T) {
	actions := []struct {
		action Action
		role   Side
	}{
		{ActionCounteroffer, SideCounterparty},
		{ActionAccept, SideCounterparty},
		{ActionReject, SideCounterparty},
		{ActionCancel, SideInitiator},
		{ActionMessage, SideInitiator},
	}

	for _, terminal := range []Status{StatusFinalized, StatusCanceled, StatusRejected} {
		for _, a := range actions {
			got, err := Transition(terminal, a.action, a.role)
			require.Error(t, err, "%s on %s", a.action, terminal)
			assert.Equal(t, apperror.KindStateConflict, apperror.KindOf(err))
			assert.Equal(t, terminal, got)
		}
	}
}

func TestAdvanceSettlement(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		target  Status
		wantErr bool
	}{
		{name: "agreed to deployed", current: StatusAgreed, target: StatusEscrowDeployed},
		{name: "deployed to deposited", current: StatusEscrowDeployed, target: StatusDeposited},
		{name: "deposited to finalized", current: StatusDeposited, target: StatusFinalized},
		{name: "skip a step", current: StatusAgreed, target: StatusDeposited, wantErr: true},
		{name: "deploy twice", current: StatusEscrowDeployed, target: StatusEscrowDeployed, wantErr: true},
		{name: "deploy before agreement", current: StatusCountered, target: StatusEscrowDeployed, wantErr: true},
		{name: "finalize a finalized trade", current: StatusFinalized, target: StatusFinalized, wantErr: true},
		{name: "backwards", current: StatusDeposited, target: StatusEscrowDeployed, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AdvanceSettlement(tt.current, tt.target)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindStateConflict, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
