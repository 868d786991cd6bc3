package handlers

import (
	"errors"
	"testing"

	"github.com/RonjuVai/Osint-Bot/internal/config"
	"github.com/RonjuVai/Osint-Bot/internal/ledger"
)

func TestRequireOperator(t *testing.T) {
	bh := &Handlers{cfg: &config.Config{AdminUserID: 7608746976}}

	if err := bh.requireOperator(7608746976); err != nil {
		t.Errorf("operator: err = %v, want nil", err)
	}
	if err := bh.requireOperator(1234); !errors.Is(err, ledger.ErrUnauthorized) {
		t.Errorf("non-operator: err = %v, want ErrUnauthorized", err)
	}

	bh = &Handlers{cfg: &config.Config{AdminUserID: 0}}
	if err := bh.requireOperator(1234); !errors.Is(err, ledger.ErrUnauthorized) {
		t.Errorf("unset operator id: err = %v, want ErrUnauthorized", err)
	}
}

func TestDefaultGrantDays(t *testing.T) {
	if defaultGrantDays != 30 {
		t.Errorf("defaultGrantDays = %d, want 30", defaultGrantDays)
	}
}
