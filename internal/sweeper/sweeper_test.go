package sweeper

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/RonjuVai/Osint-Bot/types"
)

type fakeStore struct {
	types.AccountStore

	mu       sync.Mutex
	premiums map[int64]time.Time
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{premiums: make(map[int64]time.Time)}
}

func (f *fakeStore) ExpireDue(now time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var expired []int64
	for id, until := range f.premiums {
		if until.Before(now) {
			delete(f.premiums, id)
			expired = append(expired, id)
		}
	}
	return expired, nil
}

func TestSweepExpiresDueGrants(t *testing.T) {
	now := time.Now()
	fs := newFakeStore()
	fs.premiums[1] = now.Add(-time.Minute)
	fs.premiums[2] = now.Add(-time.Hour)
	fs.premiums[3] = now.Add(time.Hour)

	var mu sync.Mutex
	var notified []int64
	s := New(fs, func(ctx context.Context, userID int64) error {
		mu.Lock()
		notified = append(notified, userID)
		mu.Unlock()
		return nil
	}, time.Hour)

	if n := s.Sweep(now); n != 2 {
		t.Fatalf("Sweep expired %d grants, want 2", n)
	}

	if _, ok := fs.premiums[3]; !ok {
		t.Error("future grant must survive the sweep")
	}

	// Notifications run on their own goroutines.
	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		done := len(notified) == 2
		mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for notifications")
		case <-time.After(10 * time.Millisecond):
		}
	}
	mu.Lock()
	sort.Slice(notified, func(i, j int) bool { return notified[i] < notified[j] })
	if notified[0] != 1 || notified[1] != 2 {
		t.Errorf("notified = %v, want [1 2]", notified)
	}
	mu.Unlock()
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Now()
	fs := newFakeStore()
	fs.premiums[1] = now.Add(-time.Minute)

	s := New(fs, nil, time.Hour)

	if n := s.Sweep(now); n != 1 {
		t.Fatalf("first sweep expired %d grants, want 1", n)
	}
	if n := s.Sweep(now); n != 0 {
		t.Fatalf("second sweep expired %d grants, want 0", n)
	}
}

func TestSweepSurvivesStoreError(t *testing.T) {
	fs := newFakeStore()
	fs.err = errors.New("connection refused")

	s := New(fs, nil, time.Hour)
	if n := s.Sweep(time.Now()); n != 0 {
		t.Fatalf("sweep under store error expired %d grants, want 0", n)
	}
}

func TestStartStop(t *testing.T) {
	fs := newFakeStore()
	s := New(fs, nil, time.Hour)

	s.Start()
	s.Start() // second start is a no-op
	s.Stop()
	s.Stop() // second stop is a no-op
}
