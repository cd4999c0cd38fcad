package probe

import "context"

// Sender delivers one request body to an endpoint and returns the raw reply.
// A non-nil error means the call did not complete at the network level; any
// reply body that arrived is returned with a nil error, whatever its content.
type Sender interface {
	Send(ctx context.Context, endpoint string, body []byte, headers map[string]string) ([]byte, error)
}

// JSONHeaders returns the headers every JSON-RPC call carries.
func JSONHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}
