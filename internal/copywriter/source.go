// Package copywriter fetches promotional blurbs for matched offers from an
// external text-generation service. It is the only asynchronous collaborator
// of the pricing engine: every path through it degrades to a fixed fallback
// string, never to an error the caller has to handle.
package copywriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/resilience"
)

// Source produces one blurb for an offer.
type Source interface {
	Generate(ctx context.Context, offer catalog.OfferGroup) (string, error)
}

// HTTPSource calls the text-generation endpoint through the resilient client.
type HTTPSource struct {
	endpoint string
	client   resilience.HTTPClient
}

// NewHTTPSource wires the endpoint behind a circuit breaker with one retry.
// The per-call budget is enforced by the caller's context; the client timeout
// here only bounds a single attempt.
func NewHTTPSource(endpoint string, attemptTimeout time.Duration) *HTTPSource {
	return &HTTPSource{
		endpoint: endpoint,
		client: resilience.HTTPClient{
			Client:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
			Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithTarget("copywriter"),
			MaxAttempts: 2,
			BaseBackoff: 100 * time.Millisecond,
			Jitter:      0.2,
			Timeout:     attemptTimeout,
		},
	}
}

type generateRequest struct {
	OfferID  string   `json:"offerId"`
	Services []string `json:"services"`
	Label    string   `json:"label,omitempty"`
	Savings  int64    `json:"savings"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate requests a blurb for the offer.
func (s *HTTPSource) Generate(ctx context.Context, offer catalog.OfferGroup) (string, error) {
	payload, err := json.Marshal(generateRequest{
		OfferID:  offer.ID,
		Services: offer.ServiceIDs,
		Label:    offer.PromotionLabel,
		Savings:  offer.Savings(),
	})
	if err != nil {
		return "", fmt.Errorf("encode copy request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build copy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("fetch copy: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch copy: unexpected status %s", resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode copy response: %w", err)
	}
	if decoded.Text == "" {
		return "", fmt.Errorf("decode copy response: empty text")
	}
	return decoded.Text, nil
}
