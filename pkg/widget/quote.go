package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// QuoteClient fetches a short quote from the Hitokoto API.
type QuoteClient struct {
	client *http.Client
}

// Quote is the displayable text for the quote widget.
type Quote struct {
	Text string
	From string
}

// String renders the widget text, e.g. "「...」 — from".
func (q Quote) String() string {
	if q.Text == "" {
		return ""
	}
	if q.From == "" {
		return q.Text
	}
	return fmt.Sprintf("%s — %s", q.Text, q.From)
}

// NewQuoteClient creates a quote client.
func NewQuoteClient(client *http.Client) *QuoteClient {
	return &QuoteClient{client: client}
}

// Random fetches one random quote.
func (q *QuoteClient) Random(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, HitokotoAPIURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quote: unexpected status %d", resp.StatusCode)
	}
	if readErr != nil {
		return Quote{}, fmt.Errorf("quote: %w", readErr)
	}

	var out hitokotoResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}
	if strings.TrimSpace(out.Hitokoto) == "" {
		return Quote{}, errors.New("quote: response missing text")
	}

	return Quote{Text: out.Hitokoto, From: out.From}, nil
}

// Hitokoto JSON structure

type hitokotoResponse struct {
	Hitokoto string `json:"hitokoto"`
	From     string `json:"from"`
}
