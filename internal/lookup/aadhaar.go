package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// One provider, two payload shapes: the ration-card form carries a
// member list, the legacy form carries the person's own fields. Which
// variant applies is decided by which fields the payload has.
type AadhaarResult struct {
	Number string
	Ration *RationCardRecord
	Legacy *LegacyAadhaarRecord
}

type RationCardRecord struct {
	Address  string         `json:"address"`
	District string         `json:"homeDistName"`
	State    string         `json:"homeStateName"`
	Scheme   string         `json:"schemeName"`
	RCID     string         `json:"rcId"`
	Members  []RationMember `json:"memberDetailsList"`
}

type RationMember struct {
	Name         string `json:"memberName"`
	Relationship string `json:"releationship_name"`
}

type LegacyAadhaarRecord struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	DOB     string `json:"dob"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ValidAadhaar accepts exactly 12 digits.
func ValidAadhaar(number string) bool {
	if len(number) != 12 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *Client) FetchAadhaar(ctx context.Context, number string) (*AadhaarResult, error) {
	body, err := c.fetch(ctx, c.AadhaarBaseURL+number)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	result := &AadhaarResult{Number: number}
	if _, ok := probe["memberDetailsList"]; ok {
		var ration RationCardRecord
		if err := json.Unmarshal(body, &ration); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		result.Ration = &ration
		return result, nil
	}

	var legacy LegacyAadhaarRecord
	if err := json.Unmarshal(body, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(legacy.Name) == "" && strings.TrimSpace(legacy.Address) == "" {
		return nil, ErrNoRecord
	}
	result.Legacy = &legacy
	return result, nil
}
