package layout

import "fmt"

// Group sizes a pitch can hold in one timeslot.
const (
	minGroupSize = 3
	maxGroupSize = 5
)

// Candidate is an accepted size combination for a given number of timeslots.
// Combo lists one group size per (timeslot, pitch), in that order.
type Candidate struct {
	Timeslots int
	Combo     []int
}

// GameDuration returns the length of one game in minutes: two halves, the
// half-time break and the changeover, rounded up to a multiple of five.
func GameDuration(half, halfTime, swap int) (int, error) {
	if half < 0 || halfTime < 0 || swap < 0 {
		return 0, fmt.Errorf("%w: durations must not be negative (half=%d, half time=%d, swap=%d)",
			ErrInvalidInput, half, halfTime, swap)
	}
	d := 2*half + halfTime + swap
	return (d + 4) / 5 * 5, nil
}

// MinimalTimeslots returns the fewest timeslots that keep every group at
// or below the maximum group size.
func MinimalTimeslots(teams, pitches int) (int, error) {
	if pitches < 1 {
		return 0, fmt.Errorf("%w: pitch count must be at least 1, got %d", ErrInvalidInput, pitches)
	}
	perPitch := ceilDiv(teams, pitches)
	return ceilDiv(perPitch, maxGroupSize), nil
}

// DistributeEvenly splits n into k near-equal parts. The remainder goes to
// the leading parts, so larger sizes always come first.
func DistributeEvenly(n, k int) []int {
	if k < 1 {
		return nil
	}
	base := n / k
	remainder := n - base*k
	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
		if i < remainder {
			sizes[i]++
		}
	}
	return sizes
}

// EnumerateSizeCombos tries one group count per pitch, starting at
// pitches*timeslots and counting down, and keeps every even split whose
// groups all hold between 3 and 5 teams.
func EnumerateSizeCombos(teams, pitches, timeslots int) [][]int {
	var combos [][]int
	groups := pitches * timeslots
	for range pitches {
		combo := DistributeEvenly(teams, groups)
		if validCombo(combo) {
			combos = append(combos, combo)
		}
		groups--
	}
	return combos
}

func validCombo(combo []int) bool {
	if len(combo) == 0 {
		return false
	}
	for _, size := range combo {
		if size < minGroupSize || size > maxGroupSize {
			return false
		}
	}
	return true
}

// SizeCombos walks timeslot counts upward from the minimum and collects
// every valid combo. The walk stops at the first count that yields none;
// larger counts are never probed even if they would fit again.
func SizeCombos(teams, pitches int) ([]Candidate, error) {
	timeslots, err := MinimalTimeslots(teams, pitches)
	if err != nil {
		return nil, err
	}
	if timeslots < 1 {
		return nil, nil
	}

	var candidates []Candidate
	for {
		combos := EnumerateSizeCombos(teams, pitches, timeslots)
		if len(combos) == 0 {
			break
		}
		for _, combo := range combos {
			candidates = append(candidates, Candidate{Timeslots: timeslots, Combo: combo})
		}
		timeslots++
	}
	return candidates, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
