package layout

import (
	"errors"
	"reflect"
	"testing"
)

func TestGameDuration(t *testing.T) {
	tests := []struct {
		half, halfTime, swap int
		want                 int
	}{
		{40, 10, 10, 100},
		{35, 10, 8, 90},
		{7, 2, 5, 25},
		{10, 0, 0, 20},
		{0, 0, 0, 0},
		{0, 0, 1, 5},
	}
	for _, tt := range tests {
		got, err := GameDuration(tt.half, tt.halfTime, tt.swap)
		if err != nil {
			t.Fatalf("GameDuration(%d, %d, %d) error: %v", tt.half, tt.halfTime, tt.swap, err)
		}
		if got != tt.want {
			t.Errorf("GameDuration(%d, %d, %d) = %d, want %d", tt.half, tt.halfTime, tt.swap, got, tt.want)
		}
	}

	t.Run("negative input", func(t *testing.T) {
		for _, in := range [][3]int{{-1, 0, 0}, {0, -1, 0}, {0, 0, -5}} {
			_, err := GameDuration(in[0], in[1], in[2])
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("GameDuration%v error = %v, want ErrInvalidInput", in, err)
			}
		}
	})
}

func TestMinimalTimeslots(t *testing.T) {
	tests := []struct {
		teams, pitches int
		want           int
	}{
		{11, 2, 2},
		{5, 1, 1},
		{6, 1, 2},
		{10, 2, 1},
		{20, 2, 2},
		{3, 4, 1},
		{26, 1, 6},
	}
	for _, tt := range tests {
		got, err := MinimalTimeslots(tt.teams, tt.pitches)
		if err != nil {
			t.Fatalf("MinimalTimeslots(%d, %d) error: %v", tt.teams, tt.pitches, err)
		}
		if got != tt.want {
			t.Errorf("MinimalTimeslots(%d, %d) = %d, want %d", tt.teams, tt.pitches, got, tt.want)
		}
	}

	t.Run("zero pitches", func(t *testing.T) {
		if _, err := MinimalTimeslots(10, 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestDistributeEvenly(t *testing.T) {
	tests := []struct {
		n, k int
		want []int
	}{
		{11, 4, []int{3, 3, 3, 2}},
		{10, 3, []int{4, 3, 3}},
		{6, 3, []int{2, 2, 2}},
		{5, 2, []int{3, 2}},
		{2, 3, []int{1, 1, 0}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := DistributeEvenly(tt.n, tt.k)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DistributeEvenly(%d, %d) = %v, want %v", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestEnumerateSizeCombos(t *testing.T) {
	tests := []struct {
		name                      string
		teams, pitches, timeslots int
		want                      [][]int
	}{
		{"one pitch one timeslot", 5, 1, 1, [][]int{{5}}},
		{"single split contains a two", 5, 1, 2, nil},
		{"eleven on two pitches", 11, 2, 2, [][]int{{4, 4, 3}}},
		{"decreasing group count order", 12, 2, 2, [][]int{{3, 3, 3, 3}, {4, 4, 4}}},
		{"oversized groups rejected", 12, 3, 1, [][]int{{4, 4, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnumerateSizeCombos(tt.teams, tt.pitches, tt.timeslots)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EnumerateSizeCombos(%d, %d, %d) = %v, want %v",
					tt.teams, tt.pitches, tt.timeslots, got, tt.want)
			}
		})
	}
}

func TestSizeCombos(t *testing.T) {
	t.Run("stops at first empty timeslot count", func(t *testing.T) {
		got, err := SizeCombos(5, 1)
		if err != nil {
			t.Fatalf("SizeCombos error: %v", err)
		}
		want := []Candidate{{Timeslots: 1, Combo: []int{5}}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SizeCombos(5, 1) = %v, want %v", got, want)
		}
	})

	t.Run("collects every combo of a timeslot count", func(t *testing.T) {
		got, err := SizeCombos(12, 2)
		if err != nil {
			t.Fatalf("SizeCombos error: %v", err)
		}
		want := []Candidate{
			{Timeslots: 2, Combo: []int{3, 3, 3, 3}},
			{Timeslots: 2, Combo: []int{4, 4, 4}},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SizeCombos(12, 2) = %v, want %v", got, want)
		}
	})

	t.Run("sum and size invariants", func(t *testing.T) {
		for teams := 3; teams <= 40; teams++ {
			for pitches := 1; pitches <= 5; pitches++ {
				candidates, err := SizeCombos(teams, pitches)
				if err != nil {
					t.Fatalf("SizeCombos(%d, %d) error: %v", teams, pitches, err)
				}
				minimum, _ := MinimalTimeslots(teams, pitches)
				for _, c := range candidates {
					sum := 0
					for _, size := range c.Combo {
						if size < 3 || size > 5 {
							t.Errorf("SizeCombos(%d, %d): combo %v has group of %d", teams, pitches, c.Combo, size)
						}
						sum += size
					}
					if sum != teams {
						t.Errorf("SizeCombos(%d, %d): combo %v sums to %d", teams, pitches, c.Combo, sum)
					}
					if c.Timeslots < minimum {
						t.Errorf("SizeCombos(%d, %d): %d timeslots below minimum %d", teams, pitches, c.Timeslots, minimum)
					}
					if len(c.Combo) > pitches*c.Timeslots {
						t.Errorf("SizeCombos(%d, %d): %d groups exceed %d pitches x %d timeslots",
							teams, pitches, len(c.Combo), pitches, c.Timeslots)
					}
				}
			}
		}
	})

	t.Run("timeslot counts are contiguous from the minimum", func(t *testing.T) {
		candidates, err := SizeCombos(30, 2)
		if err != nil {
			t.Fatalf("SizeCombos error: %v", err)
		}
		if len(candidates) == 0 {
			t.Fatal("no candidates for 30 teams on 2 pitches")
		}
		minimum, _ := MinimalTimeslots(30, 2)
		expect := minimum
		for _, c := range candidates {
			if c.Timeslots != expect && c.Timeslots != expect+1 {
				t.Fatalf("timeslot count jumped from %d to %d", expect, c.Timeslots)
			}
			expect = c.Timeslots
		}
	})
}
