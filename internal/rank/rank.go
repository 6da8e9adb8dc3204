package rank

import "cmp"

// Item pairs a value with the key it is ranked by.
type Item[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Descending returns the values ordered by key, largest first.
// The order of items with equal keys is unspecified.
func Descending[K cmp.Ordered, V any](items []Item[K, V]) []V {
	work := make([]Item[K, V], len(items))
	copy(work, items)
	quicksort(work)

	out := make([]V, len(work))
	for i, it := range work {
		out[i] = it.Value
	}
	return out
}

// quicksort recurses into the left side and loops over the right.
func quicksort[K cmp.Ordered, V any](s []Item[K, V]) {
	for len(s) > 1 {
		p := partition(s)
		quicksort(s[:p])
		s = s[p+1:]
	}
}

// partition uses the last item as the pivot and moves every item with a
// strictly greater key in front of it. Returns the pivot's final index.
func partition[K cmp.Ordered, V any](s []Item[K, V]) int {
	last := len(s) - 1
	pivot := s[last].Key
	i := 0
	for j := range last {
		if s[j].Key > pivot {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[last] = s[last], s[i]
	return i
}
