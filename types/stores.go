package types

import "time"

// AccountStore is the durable keyed table of accounts plus the referral
// event log. Every mutation is a single atomic statement scoped by
// user_id; composite referral rewards run in one transaction.
type AccountStore interface {
	// CreateWithTrial inserts the account and, in the same transaction,
	// pays the referral reward when a referrer is attached. A crash can
	// never leave a referred account with no paid event.
	CreateWithTrial(acc Account, referralReward int) (created bool, rewarded bool, err error)
	GetAccount(userID int64) (*Account, error)
	TouchProfile(userID int64, username, firstName string) error
	SetVerified(userID int64) error

	Debit(userID int64, amount int) (ok bool, remaining int, err error)
	Refund(userID int64, amount int) error
	AdjustCredits(userID int64, delta int) (found bool, err error)

	GrantPremium(userID int64, until time.Time) (found bool, err error)
	ExpireDue(now time.Time) ([]int64, error)

	ResolveReferralCode(code string) (userID int64, found bool, err error)

	Stats() (*Stats, error)
	AllUserIDs() ([]int64, error)
	SaveBroadcast(text string) error
}

// SessionStore holds the per-user "expecting next free-text input" mode.
// Entries carry a TTL so a stale awaiting state expires on its own.
type SessionStore interface {
	GetAwaitState(userID int64) (AwaitState, error)
	SetAwaitState(userID int64, state AwaitState) error
	ClearAwaitState(userID int64) error
}
