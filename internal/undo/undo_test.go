package undo

import (
	"testing"

	"cinerank/internal/domain"

	"github.com/google/uuid"
)

func TestPopEmpty(t *testing.T) {
	s := New()
	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack reported a snapshot")
	}
}

func TestPushPop(t *testing.T) {
	s := New()
	pool := domain.Pool{{ID: uuid.New(), Title: "Heat", Rating: 1200}}
	s.Push(pool)

	// mutating the live pool must not leak into the stored snapshot
	pool[0].Rating = 900
	pool[0].History = append(pool[0].History, domain.MatchRecord{Delta: -300})

	snapshot, ok := s.Pop()
	if !ok {
		t.Fatal("Pop() reported empty")
	}
	if snapshot[0].Rating != 1200 {
		t.Errorf("snapshot rating = %d, want 1200", snapshot[0].Rating)
	}
	if len(snapshot[0].History) != 0 {
		t.Errorf("snapshot history length = %d, want 0", len(snapshot[0].History))
	}
}

func TestDepthBound(t *testing.T) {
	s := NewWithDepth(3)
	for i := 0; i < 5; i++ {
		s.Push(domain.Pool{{Rating: i}})
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	// newest first: 4, 3, 2; 0 and 1 were dropped
	for _, want := range []int{4, 3, 2} {
		snapshot, ok := s.Pop()
		if !ok {
			t.Fatal("Pop() reported empty")
		}
		if snapshot[0].Rating != want {
			t.Errorf("snapshot rating = %d, want %d", snapshot[0].Rating, want)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Error("stack should be exhausted")
	}
}
