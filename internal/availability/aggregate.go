// Package availability folds per-service availability figures into the
// composite availability of a system whose components are independent.
package availability

import "github.com/hamed0406/rpcmon/internal/jsonrpc"

// DefaultThreshold is the composite value at or above which a system is
// reported as healthy.
const DefaultThreshold = 0.95

// Aggregate is the running state of one monitoring pass. It is updated in
// strict sequence by a single goroutine and needs no locking.
type Aggregate struct {
	Composite float64
	Responded int
	Total     int
}

// New returns an aggregate for a run over total endpoints.
func New(total int) *Aggregate {
	return &Aggregate{Composite: 1.0, Total: total}
}

// Observe folds one classified reply into the aggregate. Only results
// count; errors and invalid replies leave it untouched. It reports whether
// the outcome was counted.
func (a *Aggregate) Observe(o jsonrpc.Outcome) bool {
	if o.Kind != jsonrpc.KindResult {
		return false
	}
	a.Composite *= o.Result.Availability
	a.Responded++
	return true
}

// Value returns the composite availability. ok is false when no endpoint
// responded, in which case the composite cannot be computed.
func (a *Aggregate) Value() (v float64, ok bool) {
	if a.Responded == 0 {
		return 0, false
	}
	return a.Composite, true
}

// Healthy reports whether the composite is computable and at or above threshold.
func (a *Aggregate) Healthy(threshold float64) bool {
	v, ok := a.Value()
	return ok && IsHealthy(v, threshold)
}

// IsHealthy reports whether a composite value meets threshold.
func IsHealthy(composite, threshold float64) bool {
	return composite >= threshold
}
