package pricing

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RonjuVai/Osint-Bot/types"
)

const (
	DefaultInitialCredits  = 30
	DefaultLookupCost      = 10
	DefaultReferralCredits = 20
)

const (
	TrialDuration     = 24 * time.Hour
	AdminGrantDefault = 30 * 24 * time.Hour
)

func getEnvInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// InitialCredits is the balance granted together with the trial.
func InitialCredits() int {
	return getEnvInt("INITIAL_CREDITS", DefaultInitialCredits)
}

// ReferralCredits is the one-time reward paid to a referrer.
func ReferralCredits() int {
	return getEnvInt("REFERRAL_CREDITS", DefaultReferralCredits)
}

// Cost returns the credit price of a lookup for non-premium users.
// Every provider is metered at the same flat rate.
func Cost(kind types.LookupKind) int {
	return getEnvInt("LOOKUP_COST", DefaultLookupCost)
}
