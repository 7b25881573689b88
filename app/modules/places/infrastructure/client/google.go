// Package placesclient queries the Google Places nearby-search endpoint.
package placesclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"golang.org/x/time/rate"
)

const (
	nearbySearchPath = "/maps/api/place/nearbysearch/json"
	defaultTimeout   = 10 * time.Second
	maxRedirects     = 3
)

// ErrUnexpectedStatus is returned for a non-200 response or an error status
// in the response body.
var ErrUnexpectedStatus = errors.New("places search returned unexpected status")

// Config configures a Client.
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client is a rate-limited nearby-search client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a client. A zero rate disables throttling.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool { return c.apiKey != "" }

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Search runs one keyword query around p.
func (c *Client) Search(ctx context.Context, p geo.Point, radius int, keyword string) ([]placesdomain.Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("location", strconv.FormatFloat(p.Lat, 'f', -1, 64)+","+strconv.FormatFloat(p.Lon, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("keyword", keyword)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+nearbySearchPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	switch body.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, body.Status)
	}

	places := make([]placesdomain.Place, 0, len(body.Results))
	for _, r := range body.Results {
		places = append(places, placesdomain.Place{
			Name: r.Name,
			Lat:  r.Geometry.Location.Lat,
			Lon:  r.Geometry.Location.Lng,
		})
	}
	return places, nil
}
