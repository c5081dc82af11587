package commentary

import (
	"strings"
	"testing"

	"cinerank/internal/domain"
)

func TestLineFreshFilms(t *testing.T) {
	p := NewPhrases()
	a := domain.Film{Title: "A", Rating: 1200, Matches: 1}
	b := domain.Film{Title: "B", Rating: 1200, Matches: 0}
	line := p.Line(a, b)
	if line == "" {
		t.Fatal("empty line")
	}
	for _, s := range fresh {
		if line == s {
			return
		}
	}
	t.Errorf("line %q not from the fresh set", line)
}

func TestLineMismatchNamesFavorite(t *testing.T) {
	p := NewPhrases()
	a := domain.Film{Title: "Underdog", Rating: 1100, Matches: 20}
	b := domain.Film{Title: "Favorite", Rating: 1400, Matches: 20}
	for i := 0; i < 50; i++ {
		line := p.Line(a, b)
		if strings.Contains(line, "Underdog") {
			t.Fatalf("line names the underdog: %q", line)
		}
	}
}

func TestLineCloseCall(t *testing.T) {
	p := NewPhrases()
	a := domain.Film{Title: "A", Rating: 1200, Matches: 20}
	b := domain.Film{Title: "B", Rating: 1210, Matches: 20}
	line := p.Line(a, b)
	for _, s := range closeCall {
		if line == s {
			return
		}
	}
	t.Errorf("line %q not from the close-call set", line)
}
