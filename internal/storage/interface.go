package storage

import (
	"cinerank/internal/domain"

	"github.com/google/uuid"
)

type FilmStorage interface {
	ListFilms() ([]domain.Film, error)
	Get(uuid.UUID) (domain.Film, error)
	Add(domain.Film) (domain.Film, error)
	SetPoster(uuid.UUID, string) error

	ImportFilms([]domain.Film) error
}

type MatchStorage interface {
	ListMatches() ([]domain.Match, error)
	Create(domain.Match) (domain.Match, error)
	DeleteLast() error

	ImportMatches([]domain.Match) error
}
