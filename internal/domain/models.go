package domain

// Endpoint is the address of one monitored service.
type Endpoint string

// Status is how a single endpoint fared during a run.
type Status string

const (
	StatusResult           Status = "result"
	StatusServiceError     Status = "service_error"
	StatusInvalid          Status = "invalid"
	StatusParseFailure     Status = "parse_failure"
	StatusTransportFailure Status = "transport_failure"
)

// Responded reports whether the status counts towards the composite.
func (s Status) Responded() bool { return s == StatusResult }

// Answered reports whether the transport call completed, whatever the reply.
func (s Status) Answered() bool { return s != StatusTransportFailure }

// Endpoints converts raw URLs into endpoints, keeping their order.
func Endpoints(urls []string) []Endpoint {
	out := make([]Endpoint, 0, len(urls))
	for _, u := range urls {
		out = append(out, Endpoint(u))
	}
	return out
}
