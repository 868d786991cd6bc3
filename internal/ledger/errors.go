package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNotVerified   = errors.New("user has not verified channel membership")
	ErrAccessExpired = errors.New("premium access expired")
	ErrUserNotFound  = errors.New("user not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
)

// InsufficientCreditsError reports the exact shortfall so the caller can
// tell the user how many credits are missing.
type InsufficientCreditsError struct {
	Cost    int
	Balance int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %d, have %d", e.Cost, e.Balance)
}

func (e *InsufficientCreditsError) Shortfall() int {
	short := e.Cost - e.Balance
	if short < 0 {
		return 0
	}
	return short
}
