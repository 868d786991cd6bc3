package ledger

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/RonjuVai/Osint-Bot/store"
	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/google/uuid"
)

type Action string

const (
	ActionUnmetered Action = "unmetered_lookup"
	ActionMetered   Action = "metered_lookup"
)

// Decision is the outcome of Authorize. Charge is non-zero only for a
// metered action without premium cover.
type Decision struct {
	Allowed bool
	Charge  int
}

// Snapshot is a pure read of one account's access state.
type Snapshot struct {
	Verified     bool
	Premium      bool
	PremiumUntil *time.Time
	Remaining    time.Duration
	TrialUsed    bool
	Credits      int
	ReferralCode string
}

// Service owns the account store and applies every balance and expiry
// mutation as a single atomic store update.
type Service struct {
	store          types.AccountStore
	initialCredits int
	referralReward int
	trialDuration  time.Duration
}

func NewService(accounts types.AccountStore, initialCredits, referralReward int, trialDuration time.Duration) *Service {
	if trialDuration <= 0 {
		trialDuration = 24 * time.Hour
	}
	return &Service{
		store:          accounts,
		initialCredits: initialCredits,
		referralReward: referralReward,
		trialDuration:  trialDuration,
	}
}

// codeAttempts bounds the retries when a freshly generated referral
// code collides with an existing account's.
const codeAttempts = 5

// EnsureAccount creates the account on first contact with its one-time
// trial grant baked in; the referral payout, when a referrer is
// attached, commits in the same store transaction. For an existing
// account only the profile fields are refreshed; the trial is never
// re-issued and the payout never repeats.
func (s *Service) EnsureAccount(userID int64, username, firstName string, referrerID *int64) (created bool, rewarded bool, err error) {
	if referrerID != nil && *referrerID == userID {
		referrerID = nil
	}
	until := time.Now().UTC().Add(s.trialDuration)
	acc := types.Account{
		UserID:       userID,
		Username:     username,
		FirstName:    firstName,
		TrialUsed:    true,
		PremiumUntil: &until,
		Credits:      s.initialCredits,
		ReferrerID:   referrerID,
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		acc.ReferralCode = newReferralCode()
		created, rewarded, err = s.store.CreateWithTrial(acc, s.referralReward)
		if errors.Is(err, store.ErrReferralCodeTaken) {
			continue
		}
		break
	}
	if err != nil {
		return false, false, err
	}
	if !created {
		if terr := s.store.TouchProfile(userID, username, firstName); terr != nil {
			log.Printf("Ledger: failed to refresh profile for %d: %v", userID, terr)
		}
	}
	return created, rewarded, nil
}

// Authorize decides whether the action may proceed and what it costs.
// Premium bypasses the charge entirely; a metered action without
// premium requires the balance to cover the cost.
func (s *Service) Authorize(userID int64, action Action, cost int) (Decision, error) {
	acc, err := s.store.GetAccount(userID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return Decision{}, ErrNotVerified
		}
		return Decision{}, err
	}
	if !acc.Verified {
		return Decision{}, ErrNotVerified
	}

	premium := acc.Premium(time.Now())
	switch action {
	case ActionUnmetered:
		if !premium {
			return Decision{}, ErrAccessExpired
		}
		return Decision{Allowed: true}, nil
	case ActionMetered:
		if premium {
			return Decision{Allowed: true}, nil
		}
		if acc.Credits >= cost {
			return Decision{Allowed: true, Charge: cost}, nil
		}
		return Decision{}, &InsufficientCreditsError{Cost: cost, Balance: acc.Credits}
	default:
		return Decision{}, ErrInvalidInput
	}
}

// Commit debits the charge before the external call is attempted. The
// store applies it as one conditional update, so a concurrent drain
// surfaces as an insufficient-credits failure rather than a negative
// balance.
func (s *Service) Commit(userID int64, charge int) error {
	if charge <= 0 {
		return nil
	}
	ok, remaining, err := s.store.Debit(userID, charge)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !ok {
		return &InsufficientCreditsError{Cost: charge, Balance: remaining}
	}
	return nil
}

func (s *Service) Refund(userID int64, charge int) error {
	if charge <= 0 {
		return nil
	}
	if err := s.store.Refund(userID, charge); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Charged runs fn under a pessimistic charge: debit first, then the
// call, then a refund on any outcome other than success. refunded
// reports whether the refund actually committed, so the caller never
// claims a refund that has not happened.
func (s *Service) Charged(userID int64, charge int, fn func() error) (refunded bool, err error) {
	if err := s.Commit(userID, charge); err != nil {
		return false, err
	}
	if err := fn(); err != nil {
		if charge <= 0 {
			return false, err
		}
		if rerr := s.Refund(userID, charge); rerr != nil {
			log.Printf("Ledger: refund of %d credits for %d failed: %v", charge, userID, rerr)
			return false, err
		}
		return true, err
	}
	return false, nil
}

// Status is a side-effect-free snapshot of the account.
func (s *Service) Status(userID int64) (*Snapshot, error) {
	acc, err := s.store.GetAccount(userID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	now := time.Now()
	snap := &Snapshot{
		Verified:     acc.Verified,
		Premium:      acc.Premium(now),
		PremiumUntil: acc.PremiumUntil,
		TrialUsed:    acc.TrialUsed,
		Credits:      acc.Credits,
		ReferralCode: acc.ReferralCode,
	}
	if snap.Premium {
		snap.Remaining = acc.PremiumUntil.Sub(now)
	}
	return snap, nil
}

// Verify marks the account after a successful group-membership check.
// The flag never auto-reverts.
func (s *Service) Verify(userID int64) error {
	if err := s.store.SetVerified(userID); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Service) GrantPremium(userID int64, duration time.Duration) (time.Time, error) {
	until := time.Now().UTC().Add(duration)
	found, err := s.store.GrantPremium(userID, until)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		return time.Time{}, ErrUserNotFound
	}
	return until, nil
}

func (s *Service) AdjustCredits(userID int64, delta int) error {
	found, err := s.store.AdjustCredits(userID, delta)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
