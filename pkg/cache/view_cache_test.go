package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore[string](ttl)
	s.now = clock.now
	return s, clock
}

func TestStoreGetSet(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	if _, ok := s.Get("a"); ok {
		t.Fatal("Get on empty store returned ok")
	}
	s.Set("a", "view-a")
	v, ok := s.Get("a")
	if !ok || v != "view-a" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}
}

func TestStoreExpiry(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Set("a", "view-a")

	clock.t = clock.t.Add(59 * time.Second)
	if _, ok := s.Get("a"); !ok {
		t.Fatal("entry expired too early")
	}

	// Get продлевает жизнь записи
	clock.t = clock.t.Add(59 * time.Second)
	if _, ok := s.Get("a"); !ok {
		t.Fatal("Get did not refresh timestamp")
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := s.Get("a"); ok {
		t.Fatal("expected expired entry to be absent")
	}
}

func TestStoreSweep(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Set("old", "old-view")
	clock.t = clock.t.Add(50 * time.Second)
	s.Set("new", "new-view")
	clock.t = clock.t.Add(20 * time.Second)

	expired := s.Sweep()
	if len(expired) != 1 || expired[0] != "old-view" {
		t.Fatalf("Sweep() = %v, want [old-view]", expired)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(0)
	s.Set("a", "view-a")

	v, ok := s.Delete("a")
	if !ok || v != "view-a" {
		t.Fatalf("Delete(a) = %q, %v", v, ok)
	}
	if _, ok := s.Delete("a"); ok {
		t.Error("second Delete returned ok")
	}
}
