package trade

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-hub/trade-hub/internal/apperror"
)

func strPtr(s string) *string { return &s }

func TestItemSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     ItemSet
		wantErr bool
	}{
		{name: "empty set", set: ItemSet{}, wantErr: true},
		{name: "nil set", set: nil, wantErr: true},
		{
			name: "nft item",
			set:  ItemSet{{Side: SideInitiator, NFTID: strPtr("nft-1")}},
		},
		{
			name: "token item",
			set:  ItemSet{{Side: SideCounterparty, TokenAmount: 10, TokenAddress: strPtr("0xabc")}},
		},
		{
			name: "nft plus token sweetener",
			set:  ItemSet{{Side: SideInitiator, NFTID: strPtr("nft-1"), TokenAmount: 5}},
		},
		{
			name:    "invalid side",
			set:     ItemSet{{Side: "OBSERVER", NFTID: strPtr("nft-1")}},
			wantErr: true,
		},
		{
			name:    "neither nft nor token",
			set:     ItemSet{{Side: SideInitiator}},
			wantErr: true,
		},
		{
			name:    "empty nft id and no token",
			set:     ItemSet{{Side: SideInitiator, NFTID: strPtr("")}},
			wantErr: true,
		},
		{
			name:    "negative token amount",
			set:     ItemSet{{Side: SideInitiator, NFTID: strPtr("nft-1"), TokenAmount: -1}},
			wantErr: true,
		},
		{
			name:    "token without address",
			set:     ItemSet{{Side: SideCounterparty, TokenAmount: 10}},
			wantErr: true,
		},
		{
			name: "one bad item fails the set",
			set: ItemSet{
				{Side: SideInitiator, NFTID: strPtr("nft-1")},
				{Side: SideCounterparty},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestItemSet_BySide(t *testing.T) {
	set := ItemSet{
		{Side: SideInitiator, NFTID: strPtr("a")},
		{Side: SideCounterparty, NFTID: strPtr("b")},
		{Side: SideInitiator, NFTID: strPtr("c")},
	}

	initiator := set.BySide(SideInitiator)
	require.Len(t, initiator, 2)
	assert.Equal(t, "a", *initiator[0].NFTID)
	assert.Equal(t, "c", *initiator[1].NFTID)

	counterparty := set.BySide(SideCounterparty)
	require.Len(t, counterparty, 1)
	assert.Equal(t, "b", *counterparty[0].NFTID)
}

func TestItemSet_Clone(t *testing.T) {
	set := ItemSet{
		{Side: SideInitiator, NFTID: strPtr("a"), Metadata: json.RawMessage(`{"k":"v"}`)},
	}

	clone := set.Clone()
	require.Len(t, clone, 1)

	clone[0].NFTID = strPtr("changed")
	clone[0].Metadata[2] = 'x'

	assert.Equal(t, "a", *set[0].NFTID)
	assert.Equal(t, json.RawMessage(`{"k":"v"}`), set[0].Metadata)
}

func TestDiff_Marshal(t *testing.T) {
	previous := ItemSet{{Side: SideInitiator, NFTID: strPtr("nft-1"), Value: 100, Revision: 1}}
	next := ItemSet{
		{Side: SideInitiator, NFTID: strPtr("nft-1"), Value: 100, Revision: 2},
		{Side: SideCounterparty, TokenAmount: 50, TokenAddress: strPtr("0xabc"), Revision: 2},
	}

	raw, err := Diff{Previous: previous, Next: next}.Marshal()
	require.NoError(t, err)

	var decoded struct {
		Previous []json.RawMessage `json:"previousItems"`
		Next     []json.RawMessage `json:"newItems"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Previous, 1)
	assert.Len(t, decoded.Next, 2)
}
