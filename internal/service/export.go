package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinerank/internal/domain"
	"cinerank/internal/undo"

	"github.com/google/uuid"
)

// exportVersion guards the snapshot format. Bump on incompatible
// changes and keep readers for old versions.
const exportVersion = 1

type exportFile struct {
	Version int           `json:"version"`
	Films   []exportFilm  `json:"films"`
	Matches []exportMatch `json:"matches"`
}

type exportFilm struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Year       string    `json:"year,omitempty"`
	PriorScore *float64  `json:"prior_score,omitempty"`
	PosterURL  string    `json:"poster_url,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

type exportMatch struct {
	FilmA  uuid.UUID `json:"film_a"`
	FilmB  uuid.UUID `json:"film_b"`
	Winner uuid.UUID `json:"winner"`
	Date   time.Time `json:"date"`
}

// Export serializes films and the raw match list. Ratings are not
// exported, an import replays them back into existence.
func (s *FilmService) Export() ([]byte, error) {
	films, err := s.filmStorage.ListFilms()
	if err != nil {
		return nil, err
	}
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}

	out := exportFile{Version: exportVersion}
	for _, f := range films {
		out.Films = append(out.Films, exportFilm{
			ID:         f.ID,
			Title:      f.Title,
			Year:       f.Year,
			PriorScore: f.PriorScore,
			PosterURL:  f.PosterURL,
			AddedAt:    f.AddedAt,
		})
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, exportMatch{
			FilmA:  m.FilmA.ID,
			FilmB:  m.FilmB.ID,
			Winner: m.Winner.ID,
			Date:   m.Date,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// Import replaces the stored films and matches with the snapshot and
// rebuilds the pool. All-or-nothing on validation, the snapshot is
// checked before anything is written.
func (s *FilmService) Import(data []byte) error {
	var in exportFile
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Version != exportVersion {
		return fmt.Errorf("unsupported export version %d", in.Version)
	}

	films := make([]domain.Film, 0, len(in.Films))
	known := make(map[uuid.UUID]bool, len(in.Films))
	for _, f := range in.Films {
		if f.Title == "" {
			return errors.New("import: film without a title")
		}
		if known[f.ID] {
			return fmt.Errorf("import: duplicate film id %s", f.ID)
		}
		known[f.ID] = true
		films = append(films, domain.Film{
			ID:         f.ID,
			Title:      f.Title,
			Year:       f.Year,
			PriorScore: f.PriorScore,
			Rating:     domain.InitialRating(f.PriorScore),
			PosterURL:  f.PosterURL,
			AddedAt:    f.AddedAt,
		})
	}

	matches := make([]domain.Match, 0, len(in.Matches))
	for i, m := range in.Matches {
		if !known[m.FilmA] || !known[m.FilmB] {
			return fmt.Errorf("import: match %d references an unknown film", i)
		}
		if m.Winner != m.FilmA && m.Winner != m.FilmB {
			return fmt.Errorf("import: match %d winner is neither side", i)
		}
		matches = append(matches, domain.Match{
			FilmA:  domain.Film{ID: m.FilmA},
			FilmB:  domain.Film{ID: m.FilmB},
			Winner: domain.Film{ID: m.Winner},
			Date:   m.Date,
		})
	}

	if err := s.filmStorage.ImportFilms(films); err != nil {
		return err
	}
	if err := s.matchStorage.ImportMatches(matches); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoStack = undo.New()
	return s.reloadLocked()
}
