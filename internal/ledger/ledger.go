// Package ledger maintains the per-film duel history. Entries are
// reciprocal and append-only: every judged duel adds exactly one record
// to the winner and one to the loser.
package ledger

import (
	"time"

	"cinerank/internal/domain"
	"cinerank/internal/elo"
)

// Record applies already-calculated new ratings to both films and
// appends the reciprocal history entries. The winner's entry carries a
// positive-or-zero delta, the loser's a negative-or-zero one.
func Record(winner, loser *domain.Film, newWinner, newLoser int, at time.Time) (winnerRec, loserRec domain.MatchRecord) {
	winnerRec = domain.MatchRecord{
		Date:            at,
		OpponentID:      loser.ID,
		OpponentTitle:   loser.Title,
		OpponentRating:  loser.Rating,
		Outcome:         domain.Win,
		Delta:           newWinner - winner.Rating,
		ResultingRating: newWinner,
	}
	loserRec = domain.MatchRecord{
		Date:            at,
		OpponentID:      winner.ID,
		OpponentTitle:   winner.Title,
		OpponentRating:  winner.Rating,
		Outcome:         domain.Loss,
		Delta:           newLoser - loser.Rating,
		ResultingRating: newLoser,
	}

	winner.Rating = newWinner
	winner.Matches++
	winner.Wins++
	winner.History = append(winner.History, winnerRec)

	loser.Rating = newLoser
	loser.Matches++
	loser.Losses++
	loser.History = append(loser.History, loserRec)

	return winnerRec, loserRec
}

// Replay rebuilds ratings and histories from the chronological match
// list, K-factor progression included. Films keep their seeded initial
// rating until their first recorded duel.
func Replay(pool domain.Pool, matches []domain.Match) {
	for _, m := range matches {
		wi := pool.Find(m.Winner.ID)
		var li int
		if m.Winner.ID == m.FilmA.ID {
			li = pool.Find(m.FilmB.ID)
		} else {
			li = pool.Find(m.FilmA.ID)
		}
		if wi < 0 || li < 0 {
			continue
		}
		winner, loser := &pool[wi], &pool[li]
		newWinner, newLoser := elo.Update(winner.Rating, winner.Matches, loser.Rating, loser.Matches)
		Record(winner, loser, newWinner, newLoser, m.Date)
	}
}
