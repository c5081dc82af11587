package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome of a duel from one film's perspective.
type Outcome int8

const (
	Win Outcome = iota
	Loss
)

func (o Outcome) String() string {
	if o == Win {
		return "win"
	}
	return "loss"
}

// MatchRecord is one ledger entry of a film's duel history.
// ResultingRating - Delta reconstructs the rating immediately before
// the duel.
type MatchRecord struct {
	Date            time.Time
	OpponentID      uuid.UUID
	OpponentTitle   string
	OpponentRating  int // opponent's rating immediately before the duel
	Outcome         Outcome
	Delta           int
	ResultingRating int
}

// RatingBefore is this film's rating immediately before the duel.
func (r MatchRecord) RatingBefore() int {
	return r.ResultingRating - r.Delta
}

// Gap is the absolute pre-duel rating distance between the two sides.
func (r MatchRecord) Gap() int {
	gap := r.RatingBefore() - r.OpponentRating
	if gap < 0 {
		return -gap
	}
	return gap
}

// Match is the storage level record of a judged duel. Per-film ledgers
// are rebuilt from the chronological match list on startup.
type Match struct {
	ID     int
	FilmA  Film
	FilmB  Film
	Winner Film
	Date   time.Time
}

// PendingPair is a duel offered for judgment. Not persisted, discarded
// once judged or skipped.
type PendingPair struct {
	A          Film
	B          Film
	Commentary string
}

// FilmStats is a film's head-to-head record against one opponent.
type FilmStats struct {
	Film   Film
	Wins   int
	Losses int
}
