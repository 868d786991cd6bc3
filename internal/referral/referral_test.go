package referral

import (
	"errors"
	"testing"

	"github.com/RonjuVai/Osint-Bot/types"
)

// fakeStore implements just the resolve surface; the embedded interface
// panics on anything else, which no test here should reach.
type fakeStore struct {
	types.AccountStore

	codes      map[string]int64
	resolveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{codes: make(map[string]int64)}
}

func (f *fakeStore) ResolveReferralCode(code string) (int64, bool, error) {
	if f.resolveErr != nil {
		return 0, false, f.resolveErr
	}
	id, ok := f.codes[code]
	return id, ok, nil
}

func TestResolve(t *testing.T) {
	fs := newFakeStore()
	fs.codes["ABCD1234"] = 42
	e := NewEngine(fs)

	id, ok := e.Resolve("ABCD1234")
	if !ok || id != 42 {
		t.Errorf("Resolve known code = (%d, %v), want (42, true)", id, ok)
	}

	if _, ok := e.Resolve("NOPE"); ok {
		t.Error("unknown code must resolve to no referrer")
	}
}

func TestResolveDegradesOnStoreError(t *testing.T) {
	fs := newFakeStore()
	fs.resolveErr = errors.New("connection refused")
	e := NewEngine(fs)

	if _, ok := e.Resolve("ABCD1234"); ok {
		t.Error("store failure must degrade to no referrer, not block the signup")
	}
}
