// internal/app/gateway/directory/client.go

// Package directory is a thin gateway to the external organizational
// directory and publication-content service. Country and congregation
// lookups are pass-throughs: upstream JSON and status codes surface
// unchanged, with no retry or circuit breaking layered on top.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Client calls the directory/content service.
type Client struct {
	countryURL      string
	congregationURL string
	cdnURL          string

	http   *http.Client
	log    *zap.Logger
	crawls singleflight.Group
}

// New creates a Client from the three upstream base URLs. No timeout is
// attached to the HTTP client; callers that need a deadline put one on the
// context.
func New(countryURL, congregationURL, cdnURL string, logger *zap.Logger) *Client {
	return &Client{
		countryURL:      countryURL,
		congregationURL: congregationURL,
		cdnURL:          cdnURL,
		http:            &http.Client{},
		log:             logger,
	}
}

// Countries fetches the country list for a language code. The returned
// status is the upstream status; body is nil unless the upstream answered
// 2xx.
func (c *Client) Countries(ctx context.Context, language string) (json.RawMessage, int, error) {
	q := url.Values{"languageCode": {language}}
	return c.passthrough(ctx, c.countryURL+"?"+q.Encode())
}

// CongregationsByCountry fetches congregations for a country, filtered by
// language and name.
func (c *Client) CongregationsByCountry(ctx context.Context, country, language, name string) (json.RawMessage, int, error) {
	q := url.Values{"languageCode": {language}, "name": {name}}
	return c.passthrough(ctx, fmt.Sprintf("%s/%s?%s", c.congregationURL, country, q.Encode()))
}

func (c *Client) passthrough(ctx context.Context, target string) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, res.StatusCode, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, err
	}
	return body, res.StatusCode, nil
}
