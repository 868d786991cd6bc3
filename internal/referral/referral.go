package referral

import (
	"log"

	"github.com/RonjuVai/Osint-Bot/types"
)

// Engine maps referral codes to referrer accounts. The signup reward
// itself commits inside the account-creation transaction, so a referred
// account and its paid event can never exist without each other.
type Engine struct {
	store types.AccountStore
}

func NewEngine(accounts types.AccountStore) *Engine {
	return &Engine{store: accounts}
}

// Resolve maps a referral code to its owning account. An unknown or
// empty code is not an error: the signup just proceeds without a
// referrer.
func (e *Engine) Resolve(code string) (int64, bool) {
	userID, found, err := e.store.ResolveReferralCode(code)
	if err != nil {
		log.Printf("Referral: failed to resolve code %q: %v", code, err)
		return 0, false
	}
	if !found || userID == 0 {
		return 0, false
	}
	return userID, true
}
