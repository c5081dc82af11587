package sqlite

import (
	"database/sql"
	"errors"

	"cinerank/gen/model"
	"cinerank/gen/table"
	"cinerank/internal/domain"
	sqlite3 "cinerank/internal/migrate"
	"cinerank/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.FilmStorage = (*Storage)(nil)
var _ storage.MatchStorage = (*Storage)(nil)

var ErrNotFound = errors.New("not found")

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "film-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpServerDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("film storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) ListFilms() ([]domain.Film, error) {
	var films []model.Films
	err := table.Films.
		SELECT(table.Films.AllColumns).
		FROM(table.Films).
		ORDER_BY(table.Films.CreatedAt).
		Query(s.db, &films)
	if err != nil {
		return nil, err
	}
	return convertFilmsToDomain(films)
}

func (s *Storage) Get(id uuid.UUID) (domain.Film, error) {
	var film model.Films
	err := table.Films.
		SELECT(table.Films.AllColumns).
		FROM(table.Films).
		WHERE(table.Films.ID.EQ(sqlite.String(id.String()))).
		Query(s.db, &film)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Film{}, ErrNotFound
		}
		return domain.Film{}, err
	}
	return convertFilmToDomain(film)
}

func (s *Storage) Add(film domain.Film) (domain.Film, error) {
	_, err := table.Films.
		INSERT(table.Films.AllColumns).
		MODEL(convertFilmFromDomain(film)).
		Exec(s.db)
	if err != nil {
		return domain.Film{}, err
	}
	return film, nil
}

func (s *Storage) SetPoster(id uuid.UUID, url string) error {
	_, err := table.Films.
		UPDATE(table.Films.PosterURL).
		SET(sqlite.String(url)).
		WHERE(table.Films.ID.EQ(sqlite.String(id.String()))).
		Exec(s.db)
	return err
}

func (s *Storage) ImportFilms(films []domain.Film) error {
	_, err := table.Films.DELETE().WHERE(sqlite.Bool(true)).Exec(s.db)
	if err != nil {
		return err
	}
	for _, film := range films {
		if _, err := s.Add(film); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) ListMatches() ([]domain.Match, error) {
	var matches []model.Matches
	err := table.Matches.
		SELECT(table.Matches.AllColumns).
		FROM(table.Matches).
		ORDER_BY(table.Matches.CreatedAt, table.Matches.ID).
		Query(s.db, &matches)
	if err != nil {
		return nil, err
	}
	films, err := s.ListFilms()
	if err != nil {
		return nil, err
	}
	filmMap := convertFilmsToMap(films)
	domainMatches, err := convertMatchesToDomain(matches)
	if err != nil {
		return nil, err
	}
	for i := range domainMatches {
		if film, ok := filmMap[domainMatches[i].FilmA.ID]; ok {
			domainMatches[i].FilmA = *film
		}
		if film, ok := filmMap[domainMatches[i].FilmB.ID]; ok {
			domainMatches[i].FilmB = *film
		}
		if film, ok := filmMap[domainMatches[i].Winner.ID]; ok {
			domainMatches[i].Winner = *film
		}
	}
	return domainMatches, nil
}

func (s *Storage) Create(match domain.Match) (domain.Match, error) {
	var created model.Matches
	err := table.Matches.
		INSERT(table.Matches.MutableColumns).
		MODEL(convertMatchFromDomain(match)).
		RETURNING(table.Matches.AllColumns).
		Query(s.db, &created)
	if err != nil {
		return domain.Match{}, err
	}
	match.ID = int(created.ID)
	return match, nil
}

// DeleteLast removes the newest match row. Paired with the undo stack:
// the in-memory pool snapshot rolls back ratings, this rolls back
// persistence.
func (s *Storage) DeleteLast() error {
	var last model.Matches
	err := table.Matches.
		SELECT(table.Matches.AllColumns).
		FROM(table.Matches).
		ORDER_BY(table.Matches.ID.DESC()).
		LIMIT(1).
		Query(s.db, &last)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil
		}
		return err
	}
	_, err = table.Matches.
		DELETE().
		WHERE(table.Matches.ID.EQ(sqlite.Int(int64(last.ID)))).
		Exec(s.db)
	return err
}

func (s *Storage) ImportMatches(matches []domain.Match) error {
	_, err := table.Matches.DELETE().WHERE(sqlite.Bool(true)).Exec(s.db)
	if err != nil {
		return err
	}
	for _, match := range matches {
		if _, err := s.Create(match); err != nil {
			return err
		}
	}
	return nil
}

func convertFilmsToMap(films []domain.Film) map[uuid.UUID]*domain.Film {
	m := make(map[uuid.UUID]*domain.Film)
	for i := range films {
		m[films[i].ID] = &films[i]
	}
	return m
}
