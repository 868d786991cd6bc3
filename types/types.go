package types

import "time"

type Account struct {
	UserID       int64
	Username     string
	FirstName    string
	JoinedAt     time.Time
	Verified     bool
	TrialUsed    bool
	PremiumUntil *time.Time
	Credits      int
	ReferrerID   *int64
	ReferralCode string
	UpdatedAt    time.Time
}

// Premium is derived: a grant exists and has not elapsed yet.
func (a *Account) Premium(now time.Time) bool {
	return a.PremiumUntil != nil && a.PremiumUntil.After(now)
}

type ReferralEvent struct {
	ReferrerID    int64
	ReferredID    int64
	RewardClaimed bool
	CreatedAt     time.Time
}

type Stats struct {
	TotalAccounts    int
	PremiumAccounts  int
	VerifiedAccounts int
	ReferralEvents   int
}
