package service

import (
	"sort"

	"cinerank/internal/analytics"
	"cinerank/internal/domain"

	"github.com/google/uuid"
)

// FilmData is everything the film card page shows: the film itself,
// its derived analytics and the head-to-head breakdown per opponent.
type FilmData struct {
	Film      domain.Film
	Card      analytics.Card
	Opponents []domain.FilmStats
}

// Superlatives are pool-wide awards recomputed from the current state.
// The Has flags report whether the pool qualifies for each award yet.
type Superlatives struct {
	Upset    analytics.Upset
	HasUpset bool

	Streak    analytics.Streak
	HasStreak bool

	Volatile      domain.Film
	VolatileScore float64
	HasVolatile   bool
}

func (s *FilmService) FilmData(id uuid.UUID) (FilmData, error) {
	film, err := s.Get(id)
	if err != nil {
		return FilmData{}, err
	}
	return FilmData{
		Film:      film,
		Card:      analytics.CardFor(film),
		Opponents: opponentStats(film),
	}, nil
}

// opponentStats folds the film's ledger into one row per opponent,
// most-played first.
func opponentStats(film domain.Film) []domain.FilmStats {
	byID := make(map[uuid.UUID]*domain.FilmStats)
	var order []uuid.UUID
	for _, rec := range film.History {
		stats, ok := byID[rec.OpponentID]
		if !ok {
			stats = &domain.FilmStats{
				Film: domain.Film{ID: rec.OpponentID, Title: rec.OpponentTitle},
			}
			byID[rec.OpponentID] = stats
			order = append(order, rec.OpponentID)
		}
		if rec.Outcome == domain.Win {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}
	result := make([]domain.FilmStats, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Wins+result[i].Losses > result[j].Wins+result[j].Losses
	})
	return result
}

func (s *FilmService) Superlatives() Superlatives {
	s.mu.Lock()
	pool := s.pool.Clone()
	s.mu.Unlock()

	var sup Superlatives
	sup.Upset, sup.HasUpset = analytics.BiggestUpset(pool)
	sup.Streak, sup.HasStreak = analytics.LongestStreak(pool)
	sup.Volatile, sup.VolatileScore, sup.HasVolatile = analytics.MostVolatile(pool)
	return sup
}
