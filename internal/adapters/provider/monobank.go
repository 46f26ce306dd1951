package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
)

// MonobankProvider fetches the published exchange-rate snapshot from the
// Monobank open API. All records are quoted against UAH (980).
type MonobankProvider struct {
	baseURL string
	client  *http.Client
}

// NewMonobankProvider creates a new Monobank rate provider. The timeout
// bounds every fetch, including connection setup and body read.
func NewMonobankProvider(baseURL string, timeout time.Duration) *MonobankProvider {
	return &MonobankProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRates retrieves the full currency snapshot. A non-200 status is
// surfaced as an UpstreamError carrying the provider's status code so the
// retrier can distinguish client-class failures from transient ones;
// transport errors and undecodable bodies bubble up as plain errors.
func (p *MonobankProvider) FetchRates(ctx context.Context) ([]domain.RateRecord, error) {
	url := fmt.Sprintf("%s/bank/currency", p.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &apperrors.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var records []domain.RateRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	return records, nil
}

// Ensure implementation matches interface
var _ portsrepo.RateProvider = (*MonobankProvider)(nil)
