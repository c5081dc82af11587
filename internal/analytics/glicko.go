package analytics

import (
	"sort"

	"cinerank/internal/domain"

	"github.com/google/uuid"
	glicko "github.com/zelenin/go-glicko2"
)

// Glicko2Rating is a secondary rating view computed by replaying the
// full duel history through Glicko-2. Display-only: it never feeds back
// into the Elo state.
type Glicko2Rating struct {
	Rating    float64
	Deviation float64
	Interval  Interval
}

// Interval is the ~95% confidence band (rating +/- two deviations).
type Interval struct {
	Min float64
	Max float64
}

// Glicko-2 priors for an unrated film.
const (
	glickoRating     = 1500
	glickoDeviation  = 350
	glickoVolatility = 0.06
)

// Glicko2 replays every recorded duel in chronological order through
// one Glicko-2 rating period. Each duel appears in two ledgers; only
// the winner's entry is consumed so it is counted once.
func Glicko2(pool domain.Pool) map[uuid.UUID]Glicko2Rating {
	players := make(map[uuid.UUID]*glicko.Player, len(pool))
	period := glicko.NewRatingPeriod()
	for i := range pool {
		p := glicko.NewPlayer(glicko.NewRating(glickoRating, glickoDeviation, glickoVolatility))
		players[pool[i].ID] = p
		period.AddPlayer(p)
	}

	type duel struct {
		winner uuid.UUID
		loser  uuid.UUID
		at     int64
	}
	var duels []duel
	for i := range pool {
		for _, rec := range pool[i].History {
			if rec.Outcome != domain.Win {
				continue
			}
			duels = append(duels, duel{winner: pool[i].ID, loser: rec.OpponentID, at: rec.Date.UnixNano()})
		}
	}
	sort.Slice(duels, func(a, b int) bool { return duels[a].at < duels[b].at })
	for _, d := range duels {
		w, okW := players[d.winner]
		l, okL := players[d.loser]
		if !okW || !okL {
			continue
		}
		period.AddMatch(w, l, glicko.MATCH_RESULT_WIN)
	}
	period.Calculate()

	out := make(map[uuid.UUID]Glicko2Rating, len(players))
	for id, p := range players {
		r := p.Rating()
		out[id] = Glicko2Rating{
			Rating:    r.R(),
			Deviation: r.Rd(),
			Interval: Interval{
				Min: r.R() - 2*r.Rd(),
				Max: r.R() + 2*r.Rd(),
			},
		}
	}
	return out
}
