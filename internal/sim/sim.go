// Package sim projects a long-run ranking by playing synthetic duel
// rounds over a copy of the pool. Swiss-style pairing keeps rounds
// informative, outcomes are drawn against the Elo expected score so an
// underdog still wins its share.
package sim

import (
	"math/rand"
	"sort"
	"time"

	"cinerank/internal/domain"
	"cinerank/internal/elo"
)

// perturbation applied to the sort key only, so the same neighbors do
// not meet every round.
const perturbation = 8.0

// Engine runs simulation rounds. Rounds mutate ratings and win/loss
// counts on the pool passed in but never append ledger entries; callers
// hand it a working copy.
type Engine struct {
	rnd *rand.Rand
}

// New returns an engine seeded from the clock.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a reproducible engine: identical seeds replay
// identical rounds over the same pool.
func NewWithSeed(seed int64) *Engine {
	return &Engine{rnd: rand.New(rand.NewSource(seed))}
}

// Run plays the given number of rounds over a copy of the pool and
// returns the projected standings sorted by rating.
func (e *Engine) Run(pool domain.Pool, rounds int) domain.Pool {
	working := pool.Clone()
	for i := 0; i < rounds; i++ {
		e.RunRound(working)
	}
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].Rating > working[j].Rating
	})
	for i := range working {
		working[i].RatingRank = i + 1
	}
	return working
}

// RunRound plays one Swiss round in place: sort by perturbed rating,
// pair adjacent films, resolve each pair probabilistically and apply
// the usual K-tier update. A round is atomic, every film is paired at
// most once and an odd film sits out.
func (e *Engine) RunRound(pool domain.Pool) {
	if len(pool) < 2 {
		return
	}
	order := make([]int, len(pool))
	keys := make([]float64, len(pool))
	for i := range pool {
		order[i] = i
		keys[i] = float64(pool[i].Rating) + (e.rnd.Float64()*2-1)*perturbation
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] > keys[order[b]]
	})

	paired := make([]bool, len(pool))
	for pos := 0; pos < len(order); pos++ {
		i := order[pos]
		if paired[i] {
			continue
		}
		j := -1
		for next := pos + 1; next < len(order); next++ {
			if !paired[order[next]] {
				j = order[next]
				break
			}
		}
		if j < 0 {
			break
		}
		paired[i], paired[j] = true, true
		e.play(&pool[i], &pool[j])
	}
}

func (e *Engine) play(a, b *domain.Film) {
	winner, loser := a, b
	if e.rnd.Float64() >= elo.Expected(a.Rating, b.Rating) {
		winner, loser = b, a
	}
	newWinner, newLoser := elo.Update(winner.Rating, winner.Matches, loser.Rating, loser.Matches)
	winner.Rating = newWinner
	winner.Matches++
	winner.Wins++
	loser.Rating = newLoser
	loser.Matches++
	loser.Losses++
}
