package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(initiatorValues, counterpartyValues []float64) ItemSet {
	var set ItemSet
	for _, v := range initiatorValues {
		set = append(set, Item{Side: SideInitiator, Value: v})
	}
	for _, v := range counterpartyValues {
		set = append(set, Item{Side: SideCounterparty, Value: v})
	}
	return set
}

func TestSideValue(t *testing.T) {
	addr := "0xtoken"
	set := ItemSet{
		{Side: SideInitiator, Value: 100},
		{Side: SideInitiator, TokenAmount: 25.5, TokenAddress: &addr},
		{Side: SideCounterparty, Value: 40},
	}

	assert.InDelta(t, 125.5, SideValue(set.BySide(SideInitiator)), 1e-9)
	assert.InDelta(t, 40.0, SideValue(set.BySide(SideCounterparty)), 1e-9)
}

func TestFairness(t *testing.T) {
	tests := []struct {
		name         string
		initiator    []float64
		counterparty []float64
		want         float64
	}{
		{name: "equal values", initiator: []float64{100}, counterparty: []float64{100}, want: 1.0},
		{name: "equal split across items", initiator: []float64{60, 40}, counterparty: []float64{100}, want: 1.0},
		{name: "half value", initiator: []float64{100}, counterparty: []float64{50}, want: 0.5},
		{name: "one side empty", initiator: []float64{100}, counterparty: nil, want: 0.0},
		{name: "both sides zero", initiator: nil, counterparty: nil, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Fairness(items(tt.initiator, tt.counterparty)), 1e-9)
		})
	}
}

func TestFairness_Symmetric(t *testing.T) {
	a := Fairness(items([]float64{100}, []float64{30}))
	b := Fairness(items([]float64{30}, []float64{100}))
	assert.InDelta(t, a, b, 1e-9)
}

func TestFairness_DecreasesWithGap(t *testing.T) {
	prev := Fairness(items([]float64{100}, []float64{100}))
	for _, cv := range []float64{90, 70, 40, 10, 1} {
		score := Fairness(items([]float64{100}, []float64{cv}))
		assert.Less(t, score, prev, "counterparty value %v", cv)
		prev = score
	}
}

func TestFairness_Bounds(t *testing.T) {
	cases := []ItemSet{
		items(nil, nil),
		items([]float64{1e12}, []float64{0.0001}),
		items([]float64{0.0001}, []float64{1e12}),
		items([]float64{5, 5, 5}, []float64{15}),
	}
	for _, set := range cases {
		score := Fairness(set)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
