package sqlite

import (
	"cinerank/gen/model"
	"cinerank/internal/domain"

	"github.com/google/uuid"
)

func convertFilmToDomain(film model.Films) (domain.Film, error) {
	id, err := uuid.Parse(film.ID)
	if err != nil {
		return domain.Film{}, err
	}
	converted := domain.Film{
		ID:         id,
		Title:      film.Title,
		PriorScore: film.PriorScore,
		Rating:     domain.InitialRating(film.PriorScore),
		AddedAt:    film.CreatedAt,
	}
	if film.Year != nil {
		converted.Year = *film.Year
	}
	if film.PosterURL != nil {
		converted.PosterURL = *film.PosterURL
	}
	return converted, nil
}

func convertFilmsToDomain(films []model.Films) ([]domain.Film, error) {
	converted := make([]domain.Film, 0, len(films))
	for _, film := range films {
		f, err := convertFilmToDomain(film)
		if err != nil {
			return nil, err
		}
		converted = append(converted, f)
	}
	return converted, nil
}

func convertFilmFromDomain(film domain.Film) model.Films {
	converted := model.Films{
		ID:         film.ID.String(),
		Title:      film.Title,
		PriorScore: film.PriorScore,
		CreatedAt:  film.AddedAt,
	}
	if film.Year != "" {
		converted.Year = &film.Year
	}
	if film.PosterURL != "" {
		converted.PosterURL = &film.PosterURL
	}
	return converted
}

func convertMatchesToDomain(matches []model.Matches) ([]domain.Match, error) {
	converted := make([]domain.Match, 0, len(matches))
	for _, match := range matches {
		idA, err := uuid.Parse(match.FilmA)
		if err != nil {
			return nil, err
		}
		idB, err := uuid.Parse(match.FilmB)
		if err != nil {
			return nil, err
		}
		idW, err := uuid.Parse(match.Winner)
		if err != nil {
			return nil, err
		}
		winner := domain.Film{ID: idW}
		converted = append(converted, domain.Match{
			ID:     int(match.ID),
			FilmA:  domain.Film{ID: idA},
			FilmB:  domain.Film{ID: idB},
			Winner: winner,
			Date:   match.CreatedAt,
		})
	}
	return converted, nil
}

func convertMatchFromDomain(match domain.Match) model.Matches {
	return model.Matches{
		FilmA:     match.FilmA.ID.String(),
		FilmB:     match.FilmB.ID.String(),
		Winner:    match.Winner.ID.String(),
		CreatedAt: match.Date,
	}
}
