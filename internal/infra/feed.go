package infra

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"context"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"
)

// FeedClient pulls the external activity feed that reports player actions.
// The feed is a bounded snapshot endpoint, not a live stream; a fetch failure
// degrades to "zero new activities this cycle" at the sync layer.
type FeedClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFeedClient(baseURL string) *FeedClient {
	return &FeedClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FeedProtegido routes every fetch through the circuit breaker so a dead feed
// endpoint fast-fails instead of tying up sync cycles for the full timeout.
type FeedProtegido struct {
	client *FeedClient
	cb     *CircuitBreaker
}

func NewFeedProtegido(client *FeedClient, cb *CircuitBreaker) *FeedProtegido {
	return &FeedProtegido{client: client, cb: cb}
}

func (f *FeedProtegido) BuscarAtividades(ctx context.Context) ([]model.AtividadeExterna, error) {
	var atividades []model.AtividadeExterna
	err := f.cb.Execute(func() error {
		var err error
		atividades, err = f.client.BuscarAtividades(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return atividades, nil
}

// BuscarAtividades fetches the full activity snapshot from the feed.
func (c *FeedClient) BuscarAtividades(ctx context.Context) ([]model.AtividadeExterna, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/atividades", nil)
	if err != nil {
		return nil, fmt.Errorf("feed: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: returned %d", resp.StatusCode)
	}

	var atividades []model.AtividadeExterna
	if err := json.NewDecoder(resp.Body).Decode(&atividades); err != nil {
		return nil, fmt.Errorf("feed: decode response: %w", err)
	}
	return atividades, nil
}
