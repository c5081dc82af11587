package duel

import (
	"errors"
	"math/rand"
	"testing"

	"cinerank/internal/domain"

	"github.com/google/uuid"
)

func testPool(n int) domain.Pool {
	pool := make(domain.Pool, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, domain.Film{
			ID:     uuid.New(),
			Rating: 1000 + i*25,
		})
	}
	return pool
}

func TestNextNotEnoughFilms(t *testing.T) {
	m := NewWithRand(rand.New(rand.NewSource(1)))
	for _, n := range []int{0, 1} {
		if _, err := m.Next(testPool(n)); !errors.Is(err, ErrNotEnoughFilms) {
			t.Errorf("pool of %d: err = %v, want ErrNotEnoughFilms", n, err)
		}
	}
}

func TestNextPoolOfTwo(t *testing.T) {
	m := NewWithRand(rand.New(rand.NewSource(42)))
	pool := testPool(2)
	for n := 0; n < 100; n++ {
		pair, err := m.Next(pool)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if pair.I == pair.J {
			t.Fatalf("self pair %d/%d", pair.I, pair.J)
		}
		if pair.I < 0 || pair.I > 1 || pair.J < 0 || pair.J > 1 {
			t.Fatalf("pair out of range: %+v", pair)
		}
		m.Advance(pool)
	}
}

func TestNeverSelfPair(t *testing.T) {
	m := NewWithRand(rand.New(rand.NewSource(7)))
	pool := testPool(30)
	for n := 0; n < 1000; n++ {
		pair, err := m.Next(pool)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if pair.I == pair.J {
			t.Fatalf("self pair after %d duels", n)
		}
		m.Advance(pool)
	}
}

func TestQueueStableUntilAdvance(t *testing.T) {
	m := NewWithRand(rand.New(rand.NewSource(3)))
	pool := testPool(10)
	first, err := m.Next(pool)
	if err != nil {
		t.Fatal(err)
	}
	again, err := m.Next(pool)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Errorf("Next() changed without Advance: %+v vs %+v", first, again)
	}
	m.Advance(pool)
	if upcoming := m.Upcoming(pool); len(upcoming) != queueDepth-1 {
		t.Errorf("Upcoming() length = %d, want %d", len(upcoming), queueDepth-1)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	pool := testPool(20)
	run := func() []Pair {
		m := NewWithRand(rand.New(rand.NewSource(99)))
		var pairs []Pair
		for n := 0; n < 50; n++ {
			p, err := m.Next(pool)
			if err != nil {
				t.Fatal(err)
			}
			pairs = append(pairs, p)
			m.Advance(pool)
		}
		return pairs
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("run diverged at duel %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestInvalidate(t *testing.T) {
	m := NewWithRand(rand.New(rand.NewSource(5)))
	pool := testPool(10)
	if _, err := m.Next(pool); err != nil {
		t.Fatal(err)
	}
	m.Invalidate()
	if len(m.queue) != 0 {
		t.Errorf("queue not cleared: %d entries", len(m.queue))
	}
	if _, err := m.Next(pool); err != nil {
		t.Errorf("Next() after Invalidate: %v", err)
	}
}
