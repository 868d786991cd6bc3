package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type PhoneResult struct {
	Success bool          `json:"success"`
	Phone   string        `json:"phone"`
	Records []PhoneRecord `json:"records"`
}

type PhoneRecord struct {
	Mobile  string `json:"Mobile"`
	Name    string `json:"Name"`
	CNIC    string `json:"CNIC"`
	Address string `json:"Address"`
	Country string `json:"Country"`
}

// NormalizePhone strips spaces and a leading plus; at least eight
// digits are required.
func NormalizePhone(number string) (string, bool) {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	number = strings.ReplaceAll(number, "+", "")
	if len(number) < 8 {
		return "", false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return number, true
}

func (c *Client) FetchPhone(ctx context.Context, number string) (*PhoneResult, error) {
	body, err := c.fetch(ctx, c.PhoneBaseURL+number)
	if err != nil {
		return nil, err
	}

	var result PhoneResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !result.Success || len(result.Records) == 0 {
		return nil, ErrNoRecord
	}
	if result.Phone == "" {
		result.Phone = number
	}
	return &result, nil
}
