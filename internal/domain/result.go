package domain

import "time"

// EndpointReport is the classification of one endpoint in one run.
type EndpointReport struct {
	Endpoint     Endpoint  `json:"endpoint"`
	RequestID    int       `json:"request_id"`
	Status       Status    `json:"status"`
	ServiceName  string    `json:"service_name,omitempty"`
	Availability *float64  `json:"availability,omitempty"` // pointer to allow nil
	ErrorCode    *int      `json:"error_code,omitempty"`   // pointer to allow nil
	ErrorMessage string    `json:"error_message,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	LatencyMS    float64   `json:"latency_ms"`
	CheckedAt    time.Time `json:"checked_at"`
}

// RunReport is the outcome of one pass over the configured endpoints.
// Composite is nil when no endpoint responded.
type RunReport struct {
	Method     string           `json:"method"`
	Endpoints  []EndpointReport `json:"endpoints"`
	Responded  int              `json:"responded"`
	Total      int              `json:"total"`
	Composite  *float64         `json:"composite_availability"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

func (r RunReport) Computable() bool { return r.Composite != nil }

// AllResponded reports whether every configured endpoint returned a result.
func (r RunReport) AllResponded() bool { return r.Responded == r.Total }
