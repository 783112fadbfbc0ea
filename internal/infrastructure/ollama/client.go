// Package ollama implements the model client against the Ollama native
// HTTP API: a single generate RPC plus a models listing used as liveness
// probe.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// Client talks to one backend base URL. Exactly one request is issued per
// Generate call; there is no internal retry loop, so latency stays
// predictable and retries remain the caller's decision.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

// New builds a client. The transport carries no global timeout; each call
// bounds itself via context so the generation and probe timeouts stay
// independent.
func New(baseURL string, logger ports.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

// generateResponse tolerates omitted fields: an absent error key means
// success.
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate implements ports.ModelClient.
func (c *Client) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultGenerateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:       opts.Model,
		Prompt:      prompt,
		Temperature: opts.Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.logger != nil {
		c.logger.Debug("generate request", map[string]interface{}{
			"model":   opts.Model,
			"timeout": timeout.String(),
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	var decoded generateResponse
	// A non-JSON body on an error status still surfaces as a backend error.
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decoded.Error
		if msg == "" {
			msg = fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(raw)))
		}
		return "", &domain.BackendError{Message: msg}
	}
	if decoded.Error != "" {
		return "", &domain.BackendError{Message: decoded.Error}
	}
	if strings.TrimSpace(decoded.Response) == "" {
		return "", domain.ErrEmptyResponse
	}
	return decoded.Response, nil
}

// ListModels implements ports.ModelClient.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.DefaultProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.BackendError{Message: resp.Status}
	}
	var decoded tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &domain.BackendError{Message: fmt.Sprintf("malformed models listing: %v", err)}
	}
	names := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// IsReachable implements ports.ModelClient with a short probe timeout
// independent of the generation timeout.
func (c *Client) IsReachable(ctx context.Context) bool {
	_, err := c.ListModels(ctx)
	return err == nil
}

// classifyTransportError maps wire failures onto the domain taxonomy:
// deadline exhaustion becomes ErrTimeout, everything else at the transport
// layer becomes ErrConnectionFailed.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrConnectionFailed, err)
}

var _ ports.ModelClient = (*Client)(nil)
