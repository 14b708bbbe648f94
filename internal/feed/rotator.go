// Package feed simulates the arrival of news and posts from a fixed pool and
// keeps them in bounded, recency-ordered lists.
package feed

// IntSource draws a uniform index in [0, n).
type IntSource interface {
	IntN(n int) int
}

// Rotator draws pool indices without repeating one until every index has been used.
type Rotator struct {
	size int
	rng  IntSource
	used map[int]struct{}
}

// NewRotator creates a Rotator over a pool of the given size.
func NewRotator(size int, rng IntSource) *Rotator {
	return &Rotator{size: size, rng: rng, used: make(map[int]struct{}, size)}
}

// Next returns an unused index. When the pool is exhausted the used set is
// cleared and Next reports false for this call; the following call may return
// any index again.
func (r *Rotator) Next() (int, bool) {
	available := make([]int, 0, r.size)
	for i := 0; i < r.size; i++ {
		if _, ok := r.used[i]; !ok {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		clear(r.used)
		return 0, false
	}
	idx := available[r.rng.IntN(len(available))]
	r.used[idx] = struct{}{}
	return idx, true
}

// Used returns how many indices have been drawn since the last reset.
func (r *Rotator) Used() int { return len(r.used) }
