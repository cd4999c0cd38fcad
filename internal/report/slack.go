package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/rpcmon/internal/domain"
)

// Slack posts the run summary to an incoming webhook.
type Slack struct {
	Webhook string
	Client  *http.Client
}

// NewSlack returns nil when webhook is empty so callers can skip it.
func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

func (s *Slack) Endpoint(domain.EndpointReport) {}

func (s *Slack) Summary(ctx context.Context, run domain.RunReport) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}
	body, _ := json.Marshal(slackPayload{Text: slackText(run)})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack: non-2xx status %d", resp.StatusCode)
	}
	return nil
}

func slackText(run domain.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*rpcmon: %d out of %d services responded*\n", run.Responded, run.Total)
	if run.Computable() {
		fmt.Fprintf(&b, "Composite disponibility: %.6f\n", *run.Composite)
	} else {
		b.WriteString("Cannot calculate the disponibility of the service.\n")
	}
	for _, e := range run.Endpoints {
		if e.Status.Responded() {
			continue
		}
		fmt.Fprintf(&b, "• %s: %s", e.Endpoint, e.Status)
		if detail := failureDetail(e); detail != "" {
			fmt.Fprintf(&b, " (%s)", detail)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// failureDetail is the one-line explanation of a non-result endpoint.
func failureDetail(e domain.EndpointReport) string {
	if e.Status == domain.StatusServiceError && e.ErrorCode != nil {
		return fmt.Sprintf("%d %s", *e.ErrorCode, e.ErrorMessage)
	}
	return e.Reason
}
