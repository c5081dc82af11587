// Package commentary produces a short line of flavor text for a
// pending duel. Display-only: nothing here may influence ratings,
// matchmaking or analytics.
package commentary

import (
	"fmt"
	"math/rand"
	"time"

	"cinerank/internal/domain"
)

// Service writes one line about an upcoming duel.
type Service interface {
	Line(a, b domain.Film) string
}

// Phrases picks from canned templates, weighted by how the ratings
// compare.
type Phrases struct {
	rnd *rand.Rand
}

func NewPhrases() *Phrases {
	return &Phrases{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var closeCall = []string{
	"Dead even on paper. Somebody has to lose.",
	"The ratings can't separate these two. Can you?",
	"A coin flip by the numbers.",
}

var mismatch = []string{
	"%s comes in as the clear favorite.",
	"An upset here would echo through the standings: %s is heavily favored.",
	"%s has the rating edge. Ratings have been wrong before.",
}

var fresh = []string{
	"Early days for both. Placement duels move fast.",
	"Two newcomers still finding their level.",
}

const (
	closeGap       = 50
	placementGames = 5
)

func (p *Phrases) Line(a, b domain.Film) string {
	if a.Matches < placementGames && b.Matches < placementGames {
		return fresh[p.rnd.Intn(len(fresh))]
	}
	gap := a.Rating - b.Rating
	if gap < 0 {
		gap = -gap
	}
	if gap < closeGap {
		return closeCall[p.rnd.Intn(len(closeCall))]
	}
	favorite := a
	if b.Rating > a.Rating {
		favorite = b
	}
	return fmt.Sprintf(mismatch[p.rnd.Intn(len(mismatch))], favorite.Title)
}
