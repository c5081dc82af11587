package poster

import (
	"context"
	"errors"

	"cinerank/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Merger is the engine-side hook that stores a resolved poster. It
// merges by id into whatever the pool state is at merge time.
type Merger interface {
	SetPoster(id uuid.UUID, url string) error
}

// Fetcher resolves posters in the background for films that have none.
type Fetcher struct {
	service Service
	merger  Merger
	log     *logrus.Entry

	queue chan domain.Film
}

func NewFetcher(service Service, merger Merger, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		service: service,
		merger:  merger,
		log:     log.WithField("from", "poster-fetcher"),
		queue:   make(chan domain.Film, 64),
	}
}

// Request queues a lookup. Films that already carry a poster or a full
// queue are skipped, a later duel will retry.
func (f *Fetcher) Request(film domain.Film) {
	if film.PosterURL != "" {
		return
	}
	select {
	case f.queue <- film:
	default:
	}
}

// Run consumes the queue until ctx is cancelled.
func (f *Fetcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case film := <-f.queue:
			f.resolve(ctx, film)
		}
	}
}

func (f *Fetcher) resolve(ctx context.Context, film domain.Film) {
	url, err := f.service.Lookup(ctx, film.Title, film.Year)
	if err != nil {
		if !errors.Is(err, ErrNoPoster) {
			f.log.WithError(err).WithField("title", film.Title).Warn("poster lookup failed")
		}
		return
	}
	if err := f.merger.SetPoster(film.ID, url); err != nil {
		f.log.WithError(err).WithField("title", film.Title).Warn("poster merge failed")
	}
}
