package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"cinerank/internal/analytics"
	"cinerank/internal/cache/mem"
	"cinerank/internal/commentary"
	"cinerank/internal/domain"
	"cinerank/internal/duel"
	"cinerank/internal/elo"
	"cinerank/internal/ledger"
	"cinerank/internal/sim"
	"cinerank/internal/storage"
	"cinerank/internal/undo"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrFilmNotFound rejects judgments that reference a film no
	// longer present in the pool. The pool stays unchanged.
	ErrFilmNotFound = errors.New("film not found")
	// ErrNotEnoughFilms mirrors the matchmaker failure for callers
	// that do not import the duel package.
	ErrNotEnoughFilms = duel.ErrNotEnoughFilms
)

// JudgeResult describes one applied judgment, for display and bot
// notifications.
type JudgeResult struct {
	Match        domain.Match
	WinnerDelta  int
	LoserDelta   int
	WinnerRating int
	LoserRating  int
}

// FilmService owns the live pool. All mutations (judge, undo, poster
// merge, import) go through its mutex, one at a time; reads hand out
// copies.
type FilmService struct {
	filmStorage  storage.FilmStorage
	matchStorage storage.MatchStorage
	commentator  commentary.Service
	log          *logrus.Entry

	mu         sync.Mutex
	pool       domain.Pool
	undoStack  *undo.Stack
	matchmaker *duel.Matchmaker
	cache      *mem.Cache

	onJudged func(JudgeResult)
}

func New(filmStorage storage.FilmStorage, matchStorage storage.MatchStorage, commentator commentary.Service, l *logrus.Logger) (*FilmService, error) {
	s := FilmService{
		filmStorage:  filmStorage,
		matchStorage: matchStorage,
		commentator:  commentator,
		log:          l.WithField("from", "film-service"),
		undoStack:    undo.New(),
		matchmaker:   duel.New(),
		cache:        mem.New(),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return &s, nil
}

// reload rebuilds the in-memory pool by replaying the stored match list
// over the stored films. Caller must not hold the mutex.
func (s *FilmService) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *FilmService) reloadLocked() error {
	films, err := s.filmStorage.ListFilms()
	if err != nil {
		return err
	}
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return err
	}
	pool := domain.Pool(films)
	ledger.Replay(pool, matches)
	s.pool = pool
	s.matchmaker.Invalidate()
	s.cache.Update(pool)
	s.log.WithFields(map[string]interface{}{
		"films":   len(pool),
		"matches": len(matches),
	}).Info("pool loaded")
	return nil
}

// OnJudged registers a hook invoked after every committed judgment.
// Used by the bot for subscriber notifications.
func (s *FilmService) OnJudged(fn func(JudgeResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onJudged = fn
}

func (s *FilmService) List() []domain.Film {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Clone()
}

// GetRatings returns the pool ordered by rating with ranks assigned.
func (s *FilmService) GetRatings() []domain.Film {
	s.mu.Lock()
	films := s.pool.Clone()
	s.mu.Unlock()

	sort.SliceStable(films, func(i, j int) bool {
		return films[i].Rating > films[j].Rating
	})
	for i := range films {
		films[i].RatingRank = i + 1
	}
	return films
}

func (s *FilmService) Get(id uuid.UUID) (domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.pool.Find(id)
	if i < 0 {
		return domain.Film{}, ErrFilmNotFound
	}
	return s.pool[i].Clone(), nil
}

func (s *FilmService) GetByTitle(title string) (domain.Film, error) {
	film, ok := s.cache.GetByTitle(title)
	if !ok {
		return domain.Film{}, ErrFilmNotFound
	}
	return s.Get(film.ID)
}

func (s *FilmService) CreateFilm(title string, year string, prior *float64) (domain.Film, error) {
	film := domain.Film{
		ID:         uuid.New(),
		Title:      title,
		Year:       year,
		PriorScore: prior,
		Rating:     domain.InitialRating(prior),
		AddedAt:    time.Now(),
	}
	created, err := s.filmStorage.Add(film)
	if err != nil {
		return domain.Film{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = append(s.pool, created)
	s.cache.Update(s.pool)
	return created, nil
}

// NextDuel returns the pair currently at the front of the matchmaker
// queue. It stays current until judged or skipped.
func (s *FilmService) NextDuel() (domain.PendingPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair, err := s.matchmaker.Next(s.pool)
	if err != nil {
		return domain.PendingPair{}, err
	}
	pending := domain.PendingPair{
		A: s.pool[pair.I].Clone(),
		B: s.pool[pair.J].Clone(),
	}
	if s.commentator != nil {
		pending.Commentary = s.commentator.Line(pending.A, pending.B)
	}
	return pending, nil
}

// Upcoming returns the queued films after the current pair so the host
// can prefetch posters.
func (s *FilmService) Upcoming() []domain.Film {
	s.mu.Lock()
	defer s.mu.Unlock()
	var films []domain.Film
	for _, pair := range s.matchmaker.Upcoming(s.pool) {
		films = append(films, s.pool[pair.I].Clone(), s.pool[pair.J].Clone())
	}
	return films
}

// Skip discards the current pair without judging it.
func (s *FilmService) Skip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchmaker.Advance(s.pool)
}

// Judge commits a duel outcome: snapshot for undo, rating update,
// ledger append, match row, queue advance. Serialized with every other
// mutation.
func (s *FilmService) Judge(winnerID, loserID uuid.UUID) (JudgeResult, error) {
	s.mu.Lock()
	result, err := s.judgeLocked(winnerID, loserID)
	hook := s.onJudged
	s.mu.Unlock()
	if err != nil {
		return JudgeResult{}, err
	}
	if hook != nil {
		hook(result)
	}
	return result, nil
}

func (s *FilmService) judgeLocked(winnerID, loserID uuid.UUID) (JudgeResult, error) {
	if winnerID == loserID {
		return JudgeResult{}, ErrFilmNotFound
	}
	wi := s.pool.Find(winnerID)
	li := s.pool.Find(loserID)
	if wi < 0 || li < 0 {
		return JudgeResult{}, ErrFilmNotFound
	}

	s.undoStack.Push(s.pool)

	winner, loser := &s.pool[wi], &s.pool[li]
	now := time.Now()
	newWinner, newLoser := elo.Update(winner.Rating, winner.Matches, loser.Rating, loser.Matches)
	winnerRec, loserRec := ledger.Record(winner, loser, newWinner, newLoser, now)

	match := domain.Match{
		FilmA:  winner.Clone(),
		FilmB:  loser.Clone(),
		Winner: winner.Clone(),
		Date:   now,
	}
	created, err := s.matchStorage.Create(match)
	if err != nil {
		// roll the in-memory update back, storage and pool must not
		// disagree
		if snapshot, ok := s.undoStack.Pop(); ok {
			s.pool = snapshot
		}
		return JudgeResult{}, err
	}

	s.matchmaker.Advance(s.pool)
	s.cache.Update(s.pool)
	s.log.WithFields(map[string]interface{}{
		"winner": winner.Title,
		"loser":  loser.Title,
		"delta":  winnerRec.Delta,
	}).Info("duel judged")

	return JudgeResult{
		Match:        created,
		WinnerDelta:  winnerRec.Delta,
		LoserDelta:   loserRec.Delta,
		WinnerRating: winner.Rating,
		LoserRating:  loser.Rating,
	}, nil
}

// Undo reverts the most recent judgment. Reports false when the
// snapshot stack is exhausted; that is a no-op, not an error.
func (s *FilmService) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.undoStack.Pop()
	if !ok {
		s.log.Info("undo requested with empty history")
		return false, nil
	}
	// posters fetched since the snapshot are cosmetic and survive the
	// rollback
	for i := range snapshot {
		if cur := s.pool.Find(snapshot[i].ID); cur >= 0 && s.pool[cur].PosterURL != "" {
			snapshot[i].PosterURL = s.pool[cur].PosterURL
		}
	}
	if err := s.matchStorage.DeleteLast(); err != nil {
		// keep the snapshot for a retry
		s.undoStack.Push(snapshot)
		return false, err
	}
	s.pool = snapshot
	s.matchmaker.Invalidate()
	s.cache.Update(s.pool)
	s.log.Info("last duel undone")
	return true, nil
}

// SetPoster merges a cosmetic poster reference into the current pool
// state by id. Never touches rating fields.
func (s *FilmService) SetPoster(id uuid.UUID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.pool.Find(id)
	if i < 0 {
		return ErrFilmNotFound
	}
	if err := s.filmStorage.SetPoster(id, url); err != nil {
		return err
	}
	s.pool[i].PosterURL = url
	s.cache.Update(s.pool)
	return nil
}

// Simulate projects the standings after the given number of synthetic
// Swiss rounds. seed 0 keeps the unseeded interactive behavior.
func (s *FilmService) Simulate(rounds int, seed int64) []domain.Film {
	s.mu.Lock()
	pool := s.pool.Clone()
	s.mu.Unlock()

	engine := sim.New()
	if seed != 0 {
		engine = sim.NewWithSeed(seed)
	}
	return engine.Run(pool, rounds)
}

// GetMatches returns all judged duels, newest first, with the rating
// movement each one caused.
func (s *FilmService) GetMatches() ([]domain.Match, error) {
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}
	s.annotate(matches)
	reverse(matches)
	return matches, nil
}

// annotate replays the match list so every entry carries the ratings
// and counts as they were when it was judged.
func (s *FilmService) annotate(matches []domain.Match) {
	films := make(map[uuid.UUID]*domain.Film)
	track := func(f domain.Film) *domain.Film {
		if tracked, ok := films[f.ID]; ok {
			return tracked
		}
		c := f.Clone()
		c.History = nil
		c.Matches, c.Wins, c.Losses = 0, 0, 0
		c.Rating = domain.InitialRating(f.PriorScore)
		films[f.ID] = &c
		return &c
	}
	for i := range matches {
		a := track(matches[i].FilmA)
		b := track(matches[i].FilmB)
		winner, loser := a, b
		if matches[i].Winner.ID == b.ID {
			winner, loser = b, a
		}
		newWinner, newLoser := elo.Update(winner.Rating, winner.Matches, loser.Rating, loser.Matches)
		ledger.Record(winner, loser, newWinner, newLoser, matches[i].Date)
		matches[i].FilmA = a.Clone()
		matches[i].FilmB = b.Clone()
		matches[i].Winner = winner.Clone()
	}
}

func reverse(m []domain.Match) {
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}

// Glicko2Ratings is the secondary rating view for the whole pool.
func (s *FilmService) Glicko2Ratings() map[uuid.UUID]analytics.Glicko2Rating {
	s.mu.Lock()
	pool := s.pool.Clone()
	s.mu.Unlock()
	return analytics.Glicko2(pool)
}
