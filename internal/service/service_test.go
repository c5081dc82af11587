package service

import (
	"errors"
	"testing"
	"time"

	"cinerank/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// memStorage keeps films and matches in slices, mirroring the join the
// sqlite storage does on ListMatches.
type memStorage struct {
	films   []domain.Film
	matches []domain.Match
	nextID  int

	createErr error
}

func (m *memStorage) ListFilms() ([]domain.Film, error) {
	out := make([]domain.Film, len(m.films))
	for i := range m.films {
		out[i] = m.films[i].Clone()
		out[i].Rating = domain.InitialRating(out[i].PriorScore)
	}
	return out, nil
}

func (m *memStorage) Get(id uuid.UUID) (domain.Film, error) {
	for i := range m.films {
		if m.films[i].ID == id {
			return m.films[i].Clone(), nil
		}
	}
	return domain.Film{}, errors.New("not found")
}

func (m *memStorage) Add(film domain.Film) (domain.Film, error) {
	m.films = append(m.films, film.Clone())
	return film, nil
}

func (m *memStorage) SetPoster(id uuid.UUID, url string) error {
	for i := range m.films {
		if m.films[i].ID == id {
			m.films[i].PosterURL = url
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memStorage) ImportFilms(films []domain.Film) error {
	m.films = nil
	for _, f := range films {
		m.films = append(m.films, f.Clone())
	}
	return nil
}

func (m *memStorage) ListMatches() ([]domain.Match, error) {
	out := make([]domain.Match, len(m.matches))
	copy(out, m.matches)
	for i := range out {
		if f, err := m.Get(out[i].FilmA.ID); err == nil {
			out[i].FilmA = f
		}
		if f, err := m.Get(out[i].FilmB.ID); err == nil {
			out[i].FilmB = f
		}
		if f, err := m.Get(out[i].Winner.ID); err == nil {
			out[i].Winner = f
		}
	}
	return out, nil
}

func (m *memStorage) Create(match domain.Match) (domain.Match, error) {
	if m.createErr != nil {
		return domain.Match{}, m.createErr
	}
	m.nextID++
	match.ID = m.nextID
	m.matches = append(m.matches, match)
	return match, nil
}

func (m *memStorage) DeleteLast() error {
	if len(m.matches) == 0 {
		return nil
	}
	m.matches = m.matches[:len(m.matches)-1]
	return nil
}

func (m *memStorage) ImportMatches(matches []domain.Match) error {
	m.matches = nil
	for _, match := range matches {
		m.nextID++
		match.ID = m.nextID
		m.matches = append(m.matches, match)
	}
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestService(t *testing.T, st *memStorage) *FilmService {
	t.Helper()
	s, err := New(st, st, nil, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func addFilm(st *memStorage, title string) domain.Film {
	film := domain.Film{
		ID:      uuid.New(),
		Title:   title,
		AddedAt: time.Now(),
	}
	st.films = append(st.films, film)
	return film
}

func TestJudgeUpdatesRatings(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Stalker")
	b := addFilm(st, "Solaris")
	s := newTestService(t, st)

	result, err := s.Judge(a.ID, b.ID)
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	// two unplayed films at 1200, placement K
	if result.WinnerRating != 1240 || result.LoserRating != 1160 {
		t.Errorf("got %d/%d, want 1240/1160", result.WinnerRating, result.LoserRating)
	}
	if result.WinnerDelta != 40 || result.LoserDelta != -40 {
		t.Errorf("deltas %d/%d, want 40/-40", result.WinnerDelta, result.LoserDelta)
	}
	if len(st.matches) != 1 {
		t.Fatalf("persisted %d matches, want 1", len(st.matches))
	}
	if st.matches[0].Winner.ID != a.ID {
		t.Errorf("persisted winner %s, want %s", st.matches[0].Winner.ID, a.ID)
	}
}

func TestJudgeUnknownFilm(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Alien")
	s := newTestService(t, st)

	before := s.List()
	if _, err := s.Judge(a.ID, uuid.New()); !errors.Is(err, ErrFilmNotFound) {
		t.Fatalf("got %v, want ErrFilmNotFound", err)
	}
	if _, err := s.Judge(a.ID, a.ID); !errors.Is(err, ErrFilmNotFound) {
		t.Fatalf("self judge: got %v, want ErrFilmNotFound", err)
	}
	after := s.List()
	if len(before) != len(after) || before[0].Rating != after[0].Rating || before[0].Matches != after[0].Matches {
		t.Error("failed judge mutated the pool")
	}
	if ok, _ := s.Undo(); ok {
		t.Error("failed judge left an undo snapshot")
	}
}

func TestJudgeStorageFailureRollsBack(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Heat")
	b := addFilm(st, "Ronin")
	s := newTestService(t, st)
	st.createErr = errors.New("disk full")

	if _, err := s.Judge(a.ID, b.ID); err == nil {
		t.Fatal("expected storage error")
	}
	for _, f := range s.List() {
		if f.Rating != domain.DefaultRating || f.Matches != 0 {
			t.Errorf("%s mutated after failed persist: rating %d matches %d", f.Title, f.Rating, f.Matches)
		}
	}
}

func TestReplayOnStartup(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Ran")
	b := addFilm(st, "Ikiru")
	s := newTestService(t, st)
	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	want, _ := s.Get(a.ID)

	// a fresh service over the same storage must replay to the same state
	restarted := newTestService(t, st)
	got, err := restarted.Get(a.ID)
	if err != nil {
		t.Fatalf("Get after restart: %v", err)
	}
	if got.Rating != want.Rating || got.Matches != want.Matches || got.Wins != want.Wins {
		t.Errorf("replayed %d/%d/%d, want %d/%d/%d",
			got.Rating, got.Matches, got.Wins, want.Rating, want.Matches, want.Wins)
	}
	if len(got.History) != len(want.History) {
		t.Errorf("replayed %d ledger entries, want %d", len(got.History), len(want.History))
	}
}

func TestUndoRoundTrip(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Seven")
	b := addFilm(st, "Zodiac")
	s := newTestService(t, st)

	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	ok, err := s.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	for _, f := range s.List() {
		if f.Rating != domain.DefaultRating || f.Matches != 0 || len(f.History) != 0 {
			t.Errorf("%s not restored: rating %d matches %d ledger %d", f.Title, f.Rating, f.Matches, len(f.History))
		}
	}
	if len(st.matches) != 0 {
		t.Errorf("%d match rows left after undo, want 0", len(st.matches))
	}

	ok, err = s.Undo()
	if err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if ok {
		t.Error("undo succeeded with empty history")
	}
}

func TestUndoKeepsPosters(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Brazil")
	b := addFilm(st, "Delicatessen")
	s := newTestService(t, st)

	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	// poster arrives after the judgment
	if err := s.SetPoster(a.ID, "https://posters/brazil.jpg"); err != nil {
		t.Fatalf("SetPoster: %v", err)
	}
	if ok, err := s.Undo(); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	got, _ := s.Get(a.ID)
	if got.PosterURL != "https://posters/brazil.jpg" {
		t.Errorf("poster lost on undo: %q", got.PosterURL)
	}
	if got.Rating != domain.DefaultRating {
		t.Errorf("rating not restored: %d", got.Rating)
	}
}

func TestCreateFilmSeedsFromPrior(t *testing.T) {
	st := &memStorage{}
	s := newTestService(t, st)

	prior := 4.5
	film, err := s.CreateFilm("Paris, Texas", "1984", &prior)
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	if film.Rating != 1360 {
		t.Errorf("seeded rating %d, want 1360", film.Rating)
	}

	plain, err := s.CreateFilm("Badlands", "", nil)
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	if plain.Rating != domain.DefaultRating {
		t.Errorf("default rating %d, want %d", plain.Rating, domain.DefaultRating)
	}
	if _, err := s.GetByTitle("paris, texas"); err != nil {
		t.Errorf("title lookup after create: %v", err)
	}
}

func TestGetRatingsOrderAndRanks(t *testing.T) {
	st := &memStorage{}
	addFilm(st, "A")
	b := addFilm(st, "B")
	c := addFilm(st, "C")
	s := newTestService(t, st)

	if _, err := s.Judge(b.ID, c.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	ratings := s.GetRatings()
	if ratings[0].ID != b.ID {
		t.Errorf("top film %s, want B", ratings[0].Title)
	}
	for i := range ratings {
		if ratings[i].RatingRank != i+1 {
			t.Errorf("rank at %d is %d", i, ratings[i].RatingRank)
		}
		if i > 0 && ratings[i].Rating > ratings[i-1].Rating {
			t.Error("ratings not sorted descending")
		}
	}
}

func TestNextDuelAdvancesOnJudge(t *testing.T) {
	st := &memStorage{}
	for _, title := range []string{"A", "B", "C", "D"} {
		addFilm(st, title)
	}
	s := newTestService(t, st)

	pair, err := s.NextDuel()
	if err != nil {
		t.Fatalf("NextDuel: %v", err)
	}
	if pair.A.ID == pair.B.ID {
		t.Fatal("self pair offered")
	}
	// stays current until judged
	again, _ := s.NextDuel()
	if again.A.ID != pair.A.ID || again.B.ID != pair.B.ID {
		t.Error("pending pair changed without a judgment")
	}
	if _, err := s.Judge(pair.A.ID, pair.B.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	next, _ := s.NextDuel()
	if next.A.ID == pair.A.ID && next.B.ID == pair.B.ID {
		t.Error("queue did not advance after judgment")
	}
}

func TestNextDuelNotEnoughFilms(t *testing.T) {
	st := &memStorage{}
	addFilm(st, "Alone")
	s := newTestService(t, st)
	if _, err := s.NextDuel(); !errors.Is(err, ErrNotEnoughFilms) {
		t.Fatalf("got %v, want ErrNotEnoughFilms", err)
	}
}

func TestGetMatchesNewestFirstAnnotated(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "First")
	b := addFilm(st, "Second")
	s := newTestService(t, st)

	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if _, err := s.Judge(b.ID, a.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}

	matches, err := s.GetMatches()
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ID < matches[1].ID {
		t.Error("matches not newest first")
	}
	// the older match must carry pre-duel state: both films unplayed
	oldest := matches[1]
	if oldest.Winner.Matches != 1 {
		t.Errorf("annotated winner matches %d, want 1", oldest.Winner.Matches)
	}
	if oldest.Winner.Rating != 1240 {
		t.Errorf("annotated winner rating %d, want 1240", oldest.Winner.Rating)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Yi Yi")
	b := addFilm(st, "A Brighter Summer Day")
	s := newTestService(t, st)
	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	want, _ := s.Get(a.ID)

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	other := &memStorage{}
	target := newTestService(t, other)
	if err := target.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got, err := target.Get(a.ID)
	if err != nil {
		t.Fatalf("Get after import: %v", err)
	}
	if got.Rating != want.Rating || got.Matches != want.Matches {
		t.Errorf("imported %d/%d, want %d/%d", got.Rating, got.Matches, want.Rating, want.Matches)
	}
	if ok, _ := target.Undo(); ok {
		t.Error("import left undo history")
	}
}

func TestImportRejectsBadSnapshots(t *testing.T) {
	st := &memStorage{}
	s := newTestService(t, st)

	tests := []struct {
		name string
		data string
	}{
		{"bad version", `{"version":99,"films":[],"matches":[]}`},
		{"unknown film in match", `{"version":1,"films":[],"matches":[{"film_a":"0193e365-0000-7000-8000-000000000001","film_b":"0193e365-0000-7000-8000-000000000002","winner":"0193e365-0000-7000-8000-000000000001","date":"2026-01-01T00:00:00Z"}]}`},
		{"winner not a side", `{"version":1,"films":[{"id":"0193e365-0000-7000-8000-000000000001","title":"A","added_at":"2026-01-01T00:00:00Z"},{"id":"0193e365-0000-7000-8000-000000000002","title":"B","added_at":"2026-01-01T00:00:00Z"}],"matches":[{"film_a":"0193e365-0000-7000-8000-000000000001","film_b":"0193e365-0000-7000-8000-000000000002","winner":"0193e365-0000-7000-8000-000000000003","date":"2026-01-01T00:00:00Z"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Import([]byte(tt.data)); err == nil {
				t.Error("import accepted an invalid snapshot")
			}
		})
	}
}

func TestOnJudgedHook(t *testing.T) {
	st := &memStorage{}
	a := addFilm(st, "Fargo")
	b := addFilm(st, "No Country for Old Men")
	s := newTestService(t, st)

	var got []JudgeResult
	s.OnJudged(func(r JudgeResult) { got = append(got, r) })

	if _, err := s.Judge(a.ID, b.ID); err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("hook fired %d times, want 1", len(got))
	}
	if got[0].Match.Winner.ID != a.ID {
		t.Errorf("hook winner %s, want %s", got[0].Match.Winner.ID, a.ID)
	}
	// failed judgments must not notify
	if _, err := s.Judge(a.ID, uuid.New()); err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 1 {
		t.Errorf("hook fired on a failed judgment")
	}
}
