// Package analytics derives read-only statistics from a pool's duel
// ledgers: rating extremes, volatility, clutch performance and
// pool-wide superlatives. Nothing here mutates the pool.
package analytics

import (
	"cinerank/internal/domain"
	"cinerank/internal/elo"
)

const (
	volatilityWindow = 10
	clutchGap        = 50
	confidenceGames  = 20

	// films need more than this many duels to qualify for the
	// most-volatile superlative, small samples are all noise
	volatileMinMatches = 5
)

// Card bundles one film's derived statistics for display.
type Card struct {
	Peak       int
	Trough     int
	Volatility float64
	Clutch     float64
	Confidence float64
}

func CardFor(f domain.Film) Card {
	return Card{
		Peak:       Peak(f),
		Trough:     Trough(f),
		Volatility: Volatility(f),
		Clutch:     ClutchFactor(f),
		Confidence: Confidence(f),
	}
}

// trajectory is the film's rating over time: the seeded initial rating
// followed by the resulting rating of every duel. A film with no ledger
// contributes just its current rating.
func trajectory(f domain.Film) []int {
	if len(f.History) == 0 {
		return []int{f.Rating}
	}
	tr := make([]int, 0, len(f.History)+1)
	tr = append(tr, f.History[0].RatingBefore())
	for _, rec := range f.History {
		tr = append(tr, rec.ResultingRating)
	}
	return tr
}

// Peak is the highest rating the film ever held.
func Peak(f domain.Film) int {
	peak := f.Rating
	for _, r := range trajectory(f) {
		if r > peak {
			peak = r
		}
	}
	return peak
}

// Trough is the lowest rating the film ever held.
func Trough(f domain.Film) int {
	trough := f.Rating
	for _, r := range trajectory(f) {
		if r < trough {
			trough = r
		}
	}
	return trough
}

// Volatility is the mean absolute rating swing over the last ten duels
// normalized by the established-tier K, on a 0-100 scale.
func Volatility(f domain.Film) float64 {
	recent := f.History
	if len(recent) == 0 {
		return 0
	}
	if len(recent) > volatilityWindow {
		recent = recent[len(recent)-volatilityWindow:]
	}
	sum := 0.0
	for _, rec := range recent {
		if rec.Delta < 0 {
			sum -= float64(rec.Delta)
		} else {
			sum += float64(rec.Delta)
		}
	}
	score := sum / float64(len(recent)) / elo.KEstablished * 100
	if score > 100 {
		return 100
	}
	return score
}

// ClutchFactor is the win rate in close duels, where the pre-duel gap
// between the sides was under clutchGap points. 0 when the film never
// played a close duel.
func ClutchFactor(f domain.Film) float64 {
	played, won := 0, 0
	for _, rec := range f.History {
		if rec.Gap() >= clutchGap {
			continue
		}
		played++
		if rec.Outcome == domain.Win {
			won++
		}
	}
	if played == 0 {
		return 0
	}
	return float64(won) / float64(played) * 100
}

// Confidence grows with duels played regardless of outcome, reaching
// 100% at twenty duels.
func Confidence(f domain.Film) float64 {
	c := float64(f.Matches) / confidenceGames * 100
	if c > 100 {
		return 100
	}
	return c
}

// Upset is a win by the lower-rated side, sized by the pre-duel gap.
type Upset struct {
	WinnerID    string
	WinnerTitle string
	LoserTitle  string
	Gap         int
}

// BiggestUpset scans every ledger for the close-call that went most
// against the ratings. ok is false when no upset was ever recorded.
func BiggestUpset(pool domain.Pool) (Upset, bool) {
	var best Upset
	found := false
	for i := range pool {
		for _, rec := range pool[i].History {
			if rec.Outcome != domain.Win {
				continue
			}
			gap := rec.OpponentRating - rec.RatingBefore()
			if gap <= 0 {
				continue
			}
			if !found || gap > best.Gap {
				best = Upset{
					WinnerID:    pool[i].ID.String(),
					WinnerTitle: pool[i].Title,
					LoserTitle:  rec.OpponentTitle,
					Gap:         gap,
				}
				found = true
			}
		}
	}
	return best, found
}

// Streak is a film's longest run of consecutive duel wins.
type Streak struct {
	FilmID string
	Title  string
	Length int
}

// LongestStreak returns the longest chronological win run held by any
// single film.
func LongestStreak(pool domain.Pool) (Streak, bool) {
	var best Streak
	for i := range pool {
		run, longest := 0, 0
		for _, rec := range pool[i].History {
			if rec.Outcome == domain.Win {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		if longest > best.Length {
			best = Streak{
				FilmID: pool[i].ID.String(),
				Title:  pool[i].Title,
				Length: longest,
			}
		}
	}
	return best, best.Length > 0
}

// MostVolatile returns the film with the highest volatility among those
// with enough duels to matter.
func MostVolatile(pool domain.Pool) (domain.Film, float64, bool) {
	var best domain.Film
	bestScore := -1.0
	for i := range pool {
		if pool[i].Matches <= volatileMinMatches {
			continue
		}
		if v := Volatility(pool[i]); v > bestScore {
			best = pool[i]
			bestScore = v
		}
	}
	return best, bestScore, bestScore >= 0
}
