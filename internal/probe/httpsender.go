package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultUserAgent = "rpcmon/1.0"
	DefaultTimeout   = 10 * time.Second

	// replies larger than this are truncated and will fail to parse
	maxReplyBytes = 4 << 20
)

// HTTPSender posts request bodies over HTTP. The timeout policy lives in
// Client; the monitor itself imposes none.
type HTTPSender struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPSender(timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSender{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: DefaultUserAgent,
	}
}

// Send POSTs body to endpoint. Non-2xx statuses are not errors: JSON-RPC
// servers may put a valid error reply in a 4xx/5xx body.
func (h *HTTPSender) Send(ctx context.Context, endpoint string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	return data, nil
}
