// Package poster resolves cover images for films. Lookups are cosmetic:
// results merge into the pool by film id and never touch rating state.
package poster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// Service resolves an image reference for a film. Implementations may
// be slow or unavailable; callers treat failures as "no poster".
type Service interface {
	Lookup(ctx context.Context, title string, year string) (string, error)
}

var ErrNoPoster = errors.New("no poster found")

// HTTPService queries an OMDb-compatible endpoint.
type HTTPService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPService(endpoint string, apiKey string) *HTTPService {
	return &HTTPService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *HTTPService) Lookup(ctx context.Context, title string, year string) (string, error) {
	q := url.Values{}
	q.Set("apikey", s.apiKey)
	q.Set("t", title)
	if year != "" {
		q.Set("y", year)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("poster lookup status " + resp.Status)
	}
	var body struct {
		Poster string `json:"Poster"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Poster == "" || body.Poster == "N/A" {
		return "", ErrNoPoster
	}
	return body.Poster, nil
}

// Disabled is the no-op service used when poster lookup is turned off.
type Disabled struct{}

func (Disabled) Lookup(context.Context, string, string) (string, error) {
	return "", ErrNoPoster
}
