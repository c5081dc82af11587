package analytics

import (
	"math"
	"testing"
	"time"

	"cinerank/internal/domain"

	"github.com/google/uuid"
)

// filmWithOutcomes builds a ledger from a win/loss sequence with a
// fixed 25-point swing per duel against a same-rated opponent.
func filmWithOutcomes(start int, outcomes ...domain.Outcome) domain.Film {
	f := domain.Film{ID: uuid.New(), Title: "film", Rating: start}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, o := range outcomes {
		delta := 25
		if o == domain.Loss {
			delta = -25
		}
		rec := domain.MatchRecord{
			Date:            at,
			OpponentID:      uuid.New(),
			OpponentTitle:   "opponent",
			OpponentRating:  f.Rating,
			Outcome:         o,
			Delta:           delta,
			ResultingRating: f.Rating + delta,
		}
		f.Rating += delta
		f.Matches++
		if o == domain.Win {
			f.Wins++
		} else {
			f.Losses++
		}
		f.History = append(f.History, rec)
		at = at.Add(time.Hour)
	}
	return f
}

func TestPeakTrough(t *testing.T) {
	f := filmWithOutcomes(1200, domain.Win, domain.Win, domain.Loss, domain.Loss, domain.Loss)
	// trajectory: 1200 1225 1250 1225 1200 1175
	if got := Peak(f); got != 1250 {
		t.Errorf("Peak() = %d, want 1250", got)
	}
	if got := Trough(f); got != 1175 {
		t.Errorf("Trough() = %d, want 1175", got)
	}
}

func TestPeakTroughNoHistory(t *testing.T) {
	f := domain.Film{Rating: 1337}
	if Peak(f) != 1337 || Trough(f) != 1337 {
		t.Errorf("Peak/Trough without ledger = %d/%d, want 1337/1337", Peak(f), Trough(f))
	}
}

func TestVolatility(t *testing.T) {
	f := filmWithOutcomes(1200, domain.Win, domain.Loss, domain.Win, domain.Loss)
	// mean |delta| = 25, normalized by K=20 -> capped at 100
	if got := Volatility(f); got != 100 {
		t.Errorf("Volatility() = %v, want 100 (capped)", got)
	}
	if got := Volatility(domain.Film{Rating: 1200}); got != 0 {
		t.Errorf("Volatility() without history = %v, want 0", got)
	}
}

func TestVolatilityWindow(t *testing.T) {
	// ten quiet duels after two wild ones: only the window counts
	f := domain.Film{ID: uuid.New(), Rating: 1200}
	deltas := []int{80, -80, 10, -10, 10, -10, 10, -10, 10, -10, 10, -10}
	for _, d := range deltas {
		outcome := domain.Win
		if d < 0 {
			outcome = domain.Loss
		}
		f.History = append(f.History, domain.MatchRecord{
			Outcome:         outcome,
			Delta:           d,
			ResultingRating: f.Rating + d,
		})
		f.Rating += d
		f.Matches++
	}
	// window holds the last ten entries, all |delta|=10 -> 10/20*100
	if got := Volatility(f); math.Abs(got-50) > 1e-9 {
		t.Errorf("Volatility() = %v, want 50", got)
	}
}

func TestClutchFactor(t *testing.T) {
	f := domain.Film{ID: uuid.New(), Rating: 1200}
	add := func(opponentGap int, outcome domain.Outcome) {
		f.History = append(f.History, domain.MatchRecord{
			OpponentRating:  1200 + opponentGap,
			Outcome:         outcome,
			Delta:           0,
			ResultingRating: 1200,
		})
	}
	add(10, domain.Win)   // close, won
	add(-20, domain.Loss) // close, lost
	add(30, domain.Win)   // close, won
	add(200, domain.Win)  // blowout gap, ignored
	if got := ClutchFactor(f); math.Abs(got-66.66666666666667) > 1e-9 {
		t.Errorf("ClutchFactor() = %v, want 66.67", got)
	}
	if got := ClutchFactor(domain.Film{}); got != 0 {
		t.Errorf("ClutchFactor() without close duels = %v, want 0", got)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		matches int
		want    float64
	}{
		{matches: 0, want: 0},
		{matches: 5, want: 25},
		{matches: 20, want: 100},
		{matches: 50, want: 100},
	}
	for _, tt := range tests {
		if got := Confidence(domain.Film{Matches: tt.matches}); got != tt.want {
			t.Errorf("Confidence(%d) = %v, want %v", tt.matches, got, tt.want)
		}
	}
}

func TestLongestStreak(t *testing.T) {
	winner := filmWithOutcomes(1200, domain.Win, domain.Win, domain.Win, domain.Loss, domain.Win)
	other := filmWithOutcomes(1200, domain.Win, domain.Loss)
	streak, ok := LongestStreak(domain.Pool{other, winner})
	if !ok {
		t.Fatal("LongestStreak() found nothing")
	}
	if streak.Length != 3 {
		t.Errorf("streak length = %d, want 3", streak.Length)
	}
	if streak.FilmID != winner.ID.String() {
		t.Errorf("streak holder = %s, want %s", streak.FilmID, winner.ID)
	}
	if _, ok := LongestStreak(domain.Pool{{Rating: 1200}}); ok {
		t.Error("LongestStreak() on ledgerless pool reported a streak")
	}
}

func TestBiggestUpset(t *testing.T) {
	underdog := domain.Film{ID: uuid.New(), Title: "Underdog", Rating: 1100}
	underdog.History = []domain.MatchRecord{
		{
			OpponentID:      uuid.New(),
			OpponentTitle:   "Favorite",
			OpponentRating:  1400,
			Outcome:         domain.Win,
			Delta:           60,
			ResultingRating: 1100,
		},
	}
	favorite := domain.Film{ID: uuid.New(), Title: "Favorite", Rating: 1400}
	upset, ok := BiggestUpset(domain.Pool{favorite, underdog})
	if !ok {
		t.Fatal("BiggestUpset() found nothing")
	}
	// pre-duel rating was 1100-60=1040 against 1400
	if upset.Gap != 360 {
		t.Errorf("upset gap = %d, want 360", upset.Gap)
	}
	if upset.WinnerTitle != "Underdog" || upset.LoserTitle != "Favorite" {
		t.Errorf("upset = %+v", upset)
	}
	if _, ok := BiggestUpset(domain.Pool{favorite}); ok {
		t.Error("BiggestUpset() without upsets reported one")
	}
}

func TestMostVolatile(t *testing.T) {
	wild := filmWithOutcomes(1200, domain.Win, domain.Loss, domain.Win, domain.Loss, domain.Win, domain.Loss)
	wild.Title = "Wild"
	// too few duels to qualify regardless of swing size
	small := filmWithOutcomes(1200, domain.Win, domain.Loss)
	small.Title = "Small"
	calm := domain.Film{ID: uuid.New(), Title: "Calm", Rating: 1200, Matches: 10}

	best, score, ok := MostVolatile(domain.Pool{small, calm, wild})
	if !ok {
		t.Fatal("MostVolatile() found nothing")
	}
	if best.Title != "Wild" {
		t.Errorf("most volatile = %s, want Wild", best.Title)
	}
	if score <= 0 {
		t.Errorf("score = %v, want > 0", score)
	}
	if _, _, ok := MostVolatile(domain.Pool{small}); ok {
		t.Error("MostVolatile() qualified a two-duel film")
	}
}
