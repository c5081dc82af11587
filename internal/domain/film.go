package domain

import (
	"time"

	"github.com/google/uuid"
)

// Film is a participant of the rating pool. Rating related fields are
// mutated only by judged duels and by the simulation engine (on a copy).
type Film struct {
	ID         uuid.UUID
	Title      string
	Year       string
	PriorScore *float64 // imported star rating, 0.5-5.0, nil if unknown
	Rating     int
	Matches    int
	Wins       int
	Losses     int
	History    []MatchRecord
	PosterURL  string // cosmetic, filled by the poster fetcher
	AddedAt    time.Time

	RatingRank int
}

const (
	DefaultRating = 1200
	priorBase     = 1000
	priorStep     = 80
)

// InitialRating seeds a new film's rating from its imported star score
// when one is present.
func InitialRating(prior *float64) int {
	if prior == nil {
		return DefaultRating
	}
	return priorBase + int(*prior*priorStep+0.5)
}

// Clone returns a deep copy, history included.
func (f Film) Clone() Film {
	c := f
	c.History = make([]MatchRecord, len(f.History))
	copy(c.History, f.History)
	return c
}

// WinRate is the share of won duels, 0 for an empty record.
func (f Film) WinRate() float64 {
	if f.Matches == 0 {
		return 0
	}
	return float64(f.Wins) / float64(f.Matches)
}

// Pool is the ordered collection of films under rating.
type Pool []Film

// Clone deep-copies the pool.
func (p Pool) Clone() Pool {
	c := make(Pool, len(p))
	for i := range p {
		c[i] = p[i].Clone()
	}
	return c
}

// Find returns the index of the film with the given id, -1 if absent.
func (p Pool) Find(id uuid.UUID) int {
	for i := range p {
		if p[i].ID == id {
			return i
		}
	}
	return -1
}
