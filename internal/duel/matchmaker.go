// Package duel picks which two films to put in front of the user next.
package duel

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"cinerank/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

var ErrNotEnoughFilms = errors.New("at least two films are required for a duel")

const (
	// queueDepth pairs are pregenerated so the host can prefetch
	// posters for upcoming duels.
	queueDepth = 5

	// proximityChance of picking the opponent near the first film's
	// rating instead of uniformly.
	proximityChance = 0.4
	proximitySample = 20
	proximityKeep   = 3

	redrawLimit = 50

	// recentLimit exact pairs are remembered to bias against serving
	// the same duel twice in a row. Soft bias only, repeats across
	// non-adjacent duels are allowed.
	recentLimit = 8
)

// Pair holds the two pool indices of an offered duel.
type Pair struct {
	I, J int
}

// Matchmaker generates duel pairs with a bounded lookahead queue.
// Not safe for concurrent use, the owning service serializes access.
type Matchmaker struct {
	rnd    *rand.Rand
	queue  []Pair
	recent mapset.Set[string]
	order  []string
}

// New returns a matchmaker seeded from the clock. Interactive use does
// not need reproducibility.
func New() *Matchmaker {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand injects the random source, for deterministic tests.
func NewWithRand(rnd *rand.Rand) *Matchmaker {
	return &Matchmaker{
		rnd:    rnd,
		recent: mapset.NewThreadUnsafeSet[string](),
	}
}

// Next returns the front of the lookahead queue, filling it first if
// needed. The pair stays current until Advance is called.
func (m *Matchmaker) Next(pool domain.Pool) (Pair, error) {
	if err := m.fill(pool); err != nil {
		return Pair{}, err
	}
	return m.queue[0], nil
}

// Upcoming returns the queued pairs after the current one, for poster
// prefetching.
func (m *Matchmaker) Upcoming(pool domain.Pool) []Pair {
	if m.fill(pool) != nil {
		return nil
	}
	return m.queue[1:]
}

// Advance pops the current pair and backfills the queue.
func (m *Matchmaker) Advance(pool domain.Pool) {
	if len(m.queue) > 0 {
		m.queue = m.queue[1:]
	}
	_ = m.fill(pool)
}

// Invalidate drops all queued pairs. Called after undo or import, when
// queued indices may no longer describe the pool.
func (m *Matchmaker) Invalidate() {
	m.queue = m.queue[:0]
}

func (m *Matchmaker) fill(pool domain.Pool) error {
	if len(pool) < 2 {
		m.queue = m.queue[:0]
		return ErrNotEnoughFilms
	}
	for len(m.queue) < queueDepth {
		m.queue = append(m.queue, m.generate(pool))
	}
	return nil
}

func (m *Matchmaker) generate(pool domain.Pool) Pair {
	i := m.rnd.Intn(len(pool))
	j := m.pickOpponent(pool, i)
	for attempt := 0; attempt < redrawLimit && (j == i || m.seenRecently(pool, i, j)); attempt++ {
		j = m.pickOpponent(pool, i)
	}
	if j == i {
		// degenerate pools can exhaust the redraw budget, fall back
		// to the neighbor
		j = (i + 1) % len(pool)
	}
	m.remember(pool, i, j)
	return Pair{I: i, J: j}
}

// pickOpponent biases toward close-rated films so duels stay
// informative, but keeps enough uniform draws to let distant films
// meet.
func (m *Matchmaker) pickOpponent(pool domain.Pool, i int) int {
	if m.rnd.Float64() >= proximityChance {
		return m.rnd.Intn(len(pool))
	}
	type candidate struct {
		idx  int
		dist int
	}
	candidates := make([]candidate, 0, proximitySample)
	for n := 0; n < proximitySample; n++ {
		j := m.rnd.Intn(len(pool))
		if j == i {
			continue
		}
		dist := pool[j].Rating - pool[i].Rating
		if dist < 0 {
			dist = -dist
		}
		candidates = append(candidates, candidate{idx: j, dist: dist})
	}
	if len(candidates) == 0 {
		return i
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })
	keep := proximityKeep
	if len(candidates) < keep {
		keep = len(candidates)
	}
	return candidates[m.rnd.Intn(keep)].idx
}

func (m *Matchmaker) seenRecently(pool domain.Pool, i, j int) bool {
	return m.recent.Contains(pairKey(pool[i].ID, pool[j].ID))
}

func (m *Matchmaker) remember(pool domain.Pool, i, j int) {
	key := pairKey(pool[i].ID, pool[j].ID)
	if m.recent.Contains(key) {
		return
	}
	m.recent.Add(key)
	m.order = append(m.order, key)
	if len(m.order) > recentLimit {
		m.recent.Remove(m.order[0])
		m.order = m.order[1:]
	}
}

// pairKey is symmetric: (a,b) and (b,a) are the same duel.
func pairKey(a, b uuid.UUID) string {
	if a.String() < b.String() {
		return a.String() + "/" + b.String()
	}
	return b.String() + "/" + a.String()
}
