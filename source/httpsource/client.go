package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/source"
)

// Client fetches plain text lists of values over HTTP.
type Client struct {
	logger *zap.SugaredLogger
}

func NewClient(logger *zap.SugaredLogger) *Client {
	return &Client{logger: logger}
}

func (c *Client) GetValues(ctx context.Context, url string) ([]uint8, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get %v: %v", url, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("expected %v response, got %v", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the response body: %v", err)
	}

	values, err := source.ParseValues(string(body))
	if err != nil {
		return nil, fmt.Errorf("returned body is not a list of values: %w", err)
	}

	return values, nil
}
