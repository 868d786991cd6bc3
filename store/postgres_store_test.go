package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/RonjuVai/Osint-Bot/types"
)

// Integration tests against a live Postgres. Enable with
// RUN_POSTGRES_TESTS=1 and point POSTGRES_DSN at a throwaway database;
// migrations run automatically.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	if os.Getenv("RUN_POSTGRES_TESTS") == "" {
		t.Skip("set RUN_POSTGRES_TESTS=1 to run Postgres integration tests")
	}
	s, err := NewPostgresStore(context.Background(), os.Getenv("POSTGRES_DSN"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func seedAccount(t *testing.T, s *PostgresStore, userID int64, code string) {
	t.Helper()
	if code == "" {
		// referral_code is unique across the table.
		code = fmt.Sprintf("T%X", userID)
	}
	until := time.Now().UTC().Add(24 * time.Hour)
	created, _, err := s.CreateWithTrial(types.Account{
		UserID:       userID,
		Username:     "tester",
		FirstName:    "Tester",
		TrialUsed:    true,
		PremiumUntil: &until,
		Credits:      30,
		ReferralCode: code,
	}, 0)
	if err != nil {
		t.Fatalf("seed %d: %v", userID, err)
	}
	if !created {
		t.Fatalf("seed %d: account already exists, use a clean database", userID)
	}
}

func TestCreateWithTrialIsExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	id := time.Now().UnixNano()
	seedAccount(t, s, id, "")

	until := time.Now().UTC().Add(24 * time.Hour)
	created, _, err := s.CreateWithTrial(types.Account{UserID: id, PremiumUntil: &until, Credits: 30, ReferralCode: fmt.Sprintf("D%X", id)}, 0)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatal("second insert must not win")
	}

	acc, err := s.GetAccount(id)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acc.Credits != 30 || !acc.TrialUsed {
		t.Errorf("account = %+v", acc)
	}
}

func TestDebitIsConditional(t *testing.T) {
	s := newTestStore(t)
	id := time.Now().UnixNano()
	seedAccount(t, s, id, "")

	ok, remaining, err := s.Debit(id, 10)
	if err != nil || !ok || remaining != 20 {
		t.Fatalf("debit 10: ok=%v remaining=%d err=%v", ok, remaining, err)
	}

	ok, remaining, err = s.Debit(id, 25)
	if err != nil {
		t.Fatalf("over-debit: %v", err)
	}
	if ok {
		t.Fatal("over-debit must not apply")
	}
	if remaining != 20 {
		t.Errorf("reported balance = %d, want 20", remaining)
	}

	if err := s.Refund(id, 10); err != nil {
		t.Fatalf("refund: %v", err)
	}
	acc, _ := s.GetAccount(id)
	if acc.Credits != 30 {
		t.Errorf("balance after refund = %d, want 30", acc.Credits)
	}
}

func TestDebitMissingAccount(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Debit(-1, 10)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestExpireDueIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	id := time.Now().UnixNano()
	seedAccount(t, s, id, "")

	past := time.Now().UTC().Add(-time.Hour)
	if found, err := s.GrantPremium(id, past); err != nil || !found {
		t.Fatalf("grant: found=%v err=%v", found, err)
	}

	now := time.Now().UTC()
	expired, err := s.ExpireDue(now)
	if err != nil {
		t.Fatalf("ExpireDue: %v", err)
	}
	var hit bool
	for _, e := range expired {
		if e == id {
			hit = true
		}
	}
	if !hit {
		t.Fatalf("expired = %v, want it to include %d", expired, id)
	}

	expired, err = s.ExpireDue(now)
	if err != nil {
		t.Fatalf("second ExpireDue: %v", err)
	}
	for _, e := range expired {
		if e == id {
			t.Fatal("second sweep must not match the same account")
		}
	}

	acc, _ := s.GetAccount(id)
	if acc.PremiumUntil != nil {
		t.Error("premium_until should be cleared")
	}
}

func TestCreateWithTrialPaysReferralOnce(t *testing.T) {
	s := newTestStore(t)
	referrer := time.Now().UnixNano()
	referred := referrer + 1
	seedAccount(t, s, referrer, "")

	until := time.Now().UTC().Add(24 * time.Hour)
	acc := types.Account{
		UserID:       referred,
		TrialUsed:    true,
		PremiumUntil: &until,
		Credits:      30,
		ReferrerID:   &referrer,
		ReferralCode: fmt.Sprintf("T%X", referred),
	}

	created, rewarded, err := s.CreateWithTrial(acc, 20)
	if err != nil || !created || !rewarded {
		t.Fatalf("first insert: created=%v rewarded=%v err=%v", created, rewarded, err)
	}

	acc.ReferralCode = fmt.Sprintf("D%X", referred)
	created, rewarded, err = s.CreateWithTrial(acc, 20)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created || rewarded {
		t.Fatal("repeat first contact must neither create nor pay")
	}

	ref, _ := s.GetAccount(referrer)
	if ref.Credits != 50 {
		t.Errorf("referrer balance = %d, want 50", ref.Credits)
	}
}

func TestCreateWithTrialReportsCodeCollision(t *testing.T) {
	s := newTestStore(t)
	first := time.Now().UnixNano()
	code := fmt.Sprintf("C%X", first)
	seedAccount(t, s, first, code)

	until := time.Now().UTC().Add(24 * time.Hour)
	_, _, err := s.CreateWithTrial(types.Account{
		UserID:       first + 1,
		TrialUsed:    true,
		PremiumUntil: &until,
		Credits:      30,
		ReferralCode: code,
	}, 0)
	if !errors.Is(err, ErrReferralCodeTaken) {
		t.Errorf("err = %v, want ErrReferralCodeTaken", err)
	}
}

func TestResolveReferralCode(t *testing.T) {
	s := newTestStore(t)
	id := time.Now().UnixNano()
	code := "T" + time.Now().UTC().Format("150405.000")
	seedAccount(t, s, id, code)

	got, found, err := s.ResolveReferralCode(code)
	if err != nil || !found || got != id {
		t.Errorf("resolve: got=%d found=%v err=%v", got, found, err)
	}
	if _, found, _ := s.ResolveReferralCode("NO-SUCH-CODE"); found {
		t.Error("unknown code must not resolve")
	}
	if _, found, _ := s.ResolveReferralCode(""); found {
		t.Error("empty code must not resolve")
	}
}
