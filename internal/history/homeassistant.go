package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"chartgen/internal/models"
)

// haState mirrors a single state object from the Home Assistant history API.
type haState struct {
	EntityID    string          `json:"entity_id"`
	State       string          `json:"state"`
	LastChanged time.Time       `json:"last_changed"`
	Attributes  haAttributes    `json:"attributes"`
	Context     json.RawMessage `json:"context,omitempty"`
}

type haAttributes struct {
	FriendlyName string `json:"friendly_name"`
}

// HomeAssistantProvider fetches entity history from the Home Assistant REST
// API (/api/history/period).
type HomeAssistantProvider struct {
	client  *resty.Client
	baseURL string
}

// Option configures a HomeAssistantProvider.
type Option func(*HomeAssistantProvider)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *HomeAssistantProvider) {
		p.client.SetTimeout(d)
	}
}

// WithRetries sets the retry count for failed requests.
func WithRetries(n int) Option {
	return func(p *HomeAssistantProvider) {
		p.client.SetRetryCount(n)
	}
}

// NewHomeAssistantProvider creates a provider against the given Home
// Assistant base URL. The token may be empty when the API is unauthenticated
// (e.g. the supervisor proxy). A failed fetch is not retried unless a caller
// opts in with WithRetries: one failed attempt ends the chart request.
func NewHomeAssistantProvider(baseURL, token string, opts ...Option) *HomeAssistantProvider {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryWaitTime(2 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}

	p := &HomeAssistantProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// History fetches state samples for the requested entities in [start, end).
func (p *HomeAssistantProvider) History(ctx context.Context, entityIDs []string, start, end time.Time) (map[string][]models.Sample, map[string]string, error) {
	url := fmt.Sprintf("%s/api/history/period/%s", p.baseURL, start.UTC().Format(time.RFC3339))

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("end_time", end.UTC().Format(time.RFC3339)).
		SetQueryParam("filter_entity_id", strings.Join(entityIDs, ",")).
		Get(url)

	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch entity history: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, nil, fmt.Errorf("history API returned status %d", resp.StatusCode())
	}

	var periods [][]haState
	if err := json.Unmarshal(resp.Body(), &periods); err != nil {
		return nil, nil, fmt.Errorf("failed to parse history response: %w", err)
	}

	samples := make(map[string][]models.Sample)
	names := make(map[string]string)

	for _, states := range periods {
		for _, st := range states {
			if st.EntityID == "" {
				continue
			}
			// The window end is exclusive; the API can include a state
			// exactly at end_time.
			if st.LastChanged.Before(start) || !st.LastChanged.Before(end) {
				continue
			}
			samples[st.EntityID] = append(samples[st.EntityID], models.Sample{
				Timestamp: st.LastChanged,
				RawValue:  st.State,
			})
			if st.Attributes.FriendlyName != "" {
				names[st.EntityID] = st.Attributes.FriendlyName
			}
		}
	}

	for _, id := range entityIDs {
		if _, ok := names[id]; !ok {
			names[id] = id
		}
	}

	return samples, names, nil
}
