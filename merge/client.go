package merge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/wudi/pagekit/observability"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 10 * time.Second
)

// ServiceClient implements Engine by delegating to a remote merge service.
// The ordered sources are posted as multipart form data under the "files"
// field; the response body is the merged document.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     observability.Logger

	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

type ClientOption func(*ServiceClient)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(sc *ServiceClient) { sc.httpClient = c }
}

func WithClientLogger(l observability.Logger) ClientOption {
	return func(sc *ServiceClient) { sc.logger = l }
}

// WithMaxRetries bounds how often a retryable failure is reattempted.
func WithMaxRetries(n int) ClientOption {
	return func(sc *ServiceClient) { sc.maxRetries = n }
}

func NewServiceClient(baseURL string, opts ...ClientOption) *ServiceClient {
	sc := &ServiceClient{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: 2 * time.Minute},
		logger:         observability.NopLogger{},
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Merge posts the sources to the service and returns the merged document.
// The insufficient-inputs gate applies client-side so a misconfigured
// service cannot weaken the contract. Transport failures and retryable
// status codes are retried with exponential backoff.
func (sc *ServiceClient) Merge(ctx context.Context, sources [][]byte) ([]byte, error) {
	if len(sources) < 2 {
		return nil, ErrInsufficientInputs
	}

	body, contentType, err := encodeSources(sources)
	if err != nil {
		return nil, err
	}

	resp, err := sc.postWithRetry(ctx, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("merge service returned HTTP %d", resp.StatusCode)
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read merge service response: %w", err)
	}
	return out, nil
}

func encodeSources(sources [][]byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, src := range sources {
		part, err := w.CreateFormFile("files", fmt.Sprintf("source-%d.pdf", i+1))
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode source %d: %w", i+1, err)
		}
		if _, err := part.Write(src); err != nil {
			return nil, "", fmt.Errorf("failed to encode source %d: %w", i+1, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (sc *ServiceClient) postWithRetry(ctx context.Context, body []byte, contentType string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= sc.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build merge request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := sc.httpClient.Do(req)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("merge service returned HTTP %d", resp.StatusCode)
			resp.Body.Close()
		}
		if attempt == sc.maxRetries {
			break
		}

		backoff := sc.backoff(attempt)
		sc.logger.Warn("merge request failed, retrying",
			observability.Int("attempt", attempt+1),
			observability.String("backoff", backoff.String()),
			observability.Error("error", lastErr))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("merge request failed after %d attempts: %w", sc.maxRetries+1, lastErr)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (sc *ServiceClient) backoff(attempt int) time.Duration {
	d := time.Duration(float64(sc.initialBackoff) * math.Pow(2, float64(attempt)))
	if d > sc.maxBackoff {
		d = sc.maxBackoff
	}
	return d
}
