package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"setup-checklist/internal/model"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type HTTPOptions struct {
	URL   string
	Token string
	// RequestsPerSecond bounds how often we hit the backend (file-change storms, repeated
	// `show` invocations in scripts). Zero means 2/s.
	RequestsPerSecond float64
	Client            *http.Client
}

// HTTPProvider fetches ChecklistData as JSON from the onboarding backend.
type HTTPProvider struct {
	url        string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPProvider(opts HTTPOptions) (*HTTPProvider, error) {
	u := strings.TrimSpace(opts.URL)
	if u == "" {
		return nil, errors.New("http provider: url is empty")
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	c := opts.Client
	if c == nil {
		c = &http.Client{}
	}
	return &HTTPProvider{
		url:        u,
		token:      strings.TrimSpace(opts.Token),
		httpClient: c,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

func (p *HTTPProvider) Fetch(ctx context.Context) (*model.ChecklistData, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build checklist request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call checklist API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("checklist API error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var data model.ChecklistData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode checklist response: %w", err)
	}
	return &data, nil
}
