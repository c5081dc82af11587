package ledger

import (
	"testing"
	"time"

	"cinerank/internal/domain"
	"cinerank/internal/elo"

	"github.com/google/uuid"
)

func TestRecord(t *testing.T) {
	now := time.Now()
	winner := domain.Film{ID: uuid.New(), Title: "Alien", Rating: 1200}
	loser := domain.Film{ID: uuid.New(), Title: "Aliens", Rating: 1200}

	wRec, lRec := Record(&winner, &loser, 1240, 1160, now)

	if winner.Rating != 1240 || loser.Rating != 1160 {
		t.Errorf("ratings = %d/%d, want 1240/1160", winner.Rating, loser.Rating)
	}
	if winner.Matches != 1 || winner.Wins != 1 || winner.Losses != 0 {
		t.Errorf("winner counts = %d/%d/%d", winner.Matches, winner.Wins, winner.Losses)
	}
	if loser.Matches != 1 || loser.Wins != 0 || loser.Losses != 1 {
		t.Errorf("loser counts = %d/%d/%d", loser.Matches, loser.Wins, loser.Losses)
	}
	if wRec.Delta != 40 || wRec.Outcome != domain.Win || wRec.OpponentRating != 1200 {
		t.Errorf("winner record = %+v", wRec)
	}
	if lRec.Delta != -40 || lRec.Outcome != domain.Loss || lRec.OpponentRating != 1200 {
		t.Errorf("loser record = %+v", lRec)
	}
	if wRec.RatingBefore() != 1200 || lRec.RatingBefore() != 1200 {
		t.Errorf("rating before = %d/%d, want 1200/1200", wRec.RatingBefore(), lRec.RatingBefore())
	}
	if len(winner.History) != 1 || len(loser.History) != 1 {
		t.Fatalf("history lengths = %d/%d", len(winner.History), len(loser.History))
	}
}

func TestRecordInvariants(t *testing.T) {
	a := domain.Film{ID: uuid.New(), Title: "a", Rating: 1200}
	b := domain.Film{ID: uuid.New(), Title: "b", Rating: 1100}
	start := time.Now()
	for i := 0; i < 30; i++ {
		winner, loser := &a, &b
		if i%3 == 0 {
			winner, loser = &b, &a
		}
		nw, nl := elo.Update(winner.Rating, winner.Matches, loser.Rating, loser.Matches)
		Record(winner, loser, nw, nl, start.Add(time.Duration(i)*time.Minute))
	}
	for _, f := range []domain.Film{a, b} {
		if f.Matches != f.Wins+f.Losses || f.Matches != len(f.History) {
			t.Errorf("%s: matches=%d wins=%d losses=%d history=%d", f.Title, f.Matches, f.Wins, f.Losses, len(f.History))
		}
		// ledger round-trip: replaying deltas from the front must land
		// on the current rating, and timestamps must not go backwards
		prev := f.History[0].RatingBefore()
		prevDate := f.History[0].Date
		for _, rec := range f.History {
			if rec.RatingBefore() != prev {
				t.Errorf("%s: rating before = %d, want %d", f.Title, rec.RatingBefore(), prev)
			}
			if rec.Date.Before(prevDate) {
				t.Errorf("%s: history went back in time", f.Title)
			}
			prev = rec.ResultingRating
			prevDate = rec.Date
		}
		if prev != f.Rating {
			t.Errorf("%s: replayed rating = %d, want %d", f.Title, prev, f.Rating)
		}
	}
}

func TestReplay(t *testing.T) {
	a := domain.Film{ID: uuid.New(), Title: "a", Rating: 1200}
	b := domain.Film{ID: uuid.New(), Title: "b", Rating: 1200}
	c := domain.Film{ID: uuid.New(), Title: "c", Rating: 1200}
	pool := domain.Pool{a, b, c}
	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	matches := []domain.Match{
		{FilmA: a, FilmB: b, Winner: a, Date: day},
		{FilmA: a, FilmB: c, Winner: c, Date: day.Add(time.Hour)},
		{FilmA: b, FilmB: c, Winner: b, Date: day.Add(2 * time.Hour)},
	}

	Replay(pool, matches)

	// a: beat b (1200 -> 1240), then lost to c
	if pool[0].Matches != 2 || pool[0].Wins != 1 {
		t.Errorf("a counts = %+v", pool[0])
	}
	if pool[0].History[0].ResultingRating != 1240 {
		t.Errorf("a first duel rating = %d, want 1240", pool[0].History[0].ResultingRating)
	}
	total := 0
	for i := range pool {
		total += pool[i].Matches
	}
	if total != 2*len(matches) {
		t.Errorf("total matches = %d, want %d", total, 2*len(matches))
	}
}
