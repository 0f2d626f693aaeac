// Package notify contains the outbound text-message gateway adapter. It
// speaks the simple GET API used by WhatsApp relay gateways: recipient,
// message text and API key as query parameters.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway implements secondary.Notifier over HTTP.
type Gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGateway creates a gateway client. baseURL is the full send endpoint
// (e.g. https://api.callmebot.com/whatsapp.php).
func NewGateway(baseURL, apiKey string) *Gateway {
	return &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send dispatches one text to the recipient handle. Returns an error if the
// gateway is unreachable or answers non-2xx; the caller decides whether that
// matters (notices are fire-and-forget).
func (g *Gateway) Send(ctx context.Context, recipient, message string) error {
	if g.baseURL == "" {
		return fmt.Errorf("notify: gateway URL is empty")
	}
	params := url.Values{}
	params.Set("phone", recipient)
	params.Set("text", message)
	if g.apiKey != "" {
		params.Set("apikey", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: gateway returned %s", resp.Status)
	}
	return nil
}
