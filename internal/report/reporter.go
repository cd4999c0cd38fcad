// Package report presents the outcome of a monitoring run: per-endpoint
// lines as they become known, then a summary.
package report

import (
	"context"

	"go.uber.org/multierr"

	"github.com/hamed0406/rpcmon/internal/domain"
)

// Reporter receives each endpoint's report in configured order, then the
// run summary once.
type Reporter interface {
	Endpoint(r domain.EndpointReport)
	Summary(ctx context.Context, run domain.RunReport) error
}

// Multi fans a run out to several reporters. Summary errors are combined.
type Multi []Reporter

func (m Multi) Endpoint(r domain.EndpointReport) {
	for _, n := range m {
		if n == nil {
			continue
		}
		n.Endpoint(r)
	}
}

func (m Multi) Summary(ctx context.Context, run domain.RunReport) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Summary(ctx, run))
	}
	return err
}
