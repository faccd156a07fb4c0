package trade

import "math"

// fairnessEpsilon keeps the score defined when both sides offer nothing of
// value.
const fairnessEpsilon = 1e-9

// SideValue aggregates the value a party offers: appraised item values plus
// fungible token amounts.
func SideValue(items ItemSet) float64 {
	var total float64
	for _, it := range items {
		total += it.Value + it.TokenAmount
	}
	return total
}

// Fairness computes the advisory [0,1] balance metric between the two sides
// of an item set. 1.0 means both sides offer equal aggregate value; the score
// decreases as the gap widens. It never gates a transition.
func Fairness(items ItemSet) float64 {
	vi := SideValue(items.BySide(SideInitiator))
	vc := SideValue(items.BySide(SideCounterparty))
	max := math.Max(math.Max(vi, vc), fairnessEpsilon)
	score := 1 - math.Abs(vi-vc)/max
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
