package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// The ledger only distinguishes a definitively successful, well-formed
// response from everything else. ErrUnavailable covers transport
// failures, timeouts and non-200 statuses; ErrMalformed covers a 200
// whose payload does not match the provider's schema. Both trigger a
// refund upstream.
var (
	ErrUnavailable = errors.New("lookup provider unavailable")
	ErrTimeout     = errors.New("lookup timed out")
	ErrMalformed   = errors.New("malformed provider response")
	ErrNoRecord    = errors.New("no record found")
)

const callTimeout = 30 * time.Second

// Client talks to the three lookup providers.
type Client struct {
	AadhaarBaseURL string
	VehicleBaseURL string
	PhoneBaseURL   string
	HTTPClient     *http.Client
}

func NewClient(aadhaarURL, vehicleURL, phoneURL string) *Client {
	return &Client{
		AadhaarBaseURL: aadhaarURL,
		VehicleBaseURL: vehicleURL,
		PhoneBaseURL:   phoneURL,
		HTTPClient: &http.Client{
			Timeout: callTimeout,
		},
	}
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// An expired deadline is reported as a timeout; every other
		// transport failure lands in the same refund bucket.
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return body, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
