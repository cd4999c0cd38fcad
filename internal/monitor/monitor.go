// Package monitor runs one availability pass over a list of JSON-RPC
// endpoints and reports how each of them and the whole system fared.
package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/availability"
	"github.com/hamed0406/rpcmon/internal/domain"
	"github.com/hamed0406/rpcmon/internal/jsonrpc"
	"github.com/hamed0406/rpcmon/internal/probe"
	"github.com/hamed0406/rpcmon/internal/report"
)

type Monitor struct {
	Logger   *zap.Logger
	Sender   probe.Sender
	Reporter report.Reporter
	Method   string
	Params   []string

	// Headers are sent on every call in addition to the JSON content type.
	Headers  map[string]string
	// Resolver, when set, explains DNS transport failures in reports.
	Resolver probe.Resolver

	now func() time.Time
}

func New(
	logger *zap.Logger,
	sender probe.Sender,
	reporter report.Reporter,
	method string,
	params []string,
) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if method == "" {
		method = jsonrpc.MethodGetDisponibility
	}
	if reporter == nil {
		reporter = report.Multi{}
	}
	return &Monitor{
		Logger:   logger,
		Sender:   sender,
		Reporter: reporter,
		Method:   method,
		Params:   append([]string(nil), params...),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run contacts every endpoint once, in order, one at a time. No endpoint
// failure stops the pass. Once ctx is done the endpoints not yet contacted
// are reported as canceled transport failures. The returned error is the
// reporter's summary error only; the report is always complete.
func (m *Monitor) Run(ctx context.Context, endpoints []domain.Endpoint) (domain.RunReport, error) {
	run := domain.RunReport{
		Method:    m.Method,
		Endpoints: make([]domain.EndpointReport, 0, len(endpoints)),
		Total:     len(endpoints),
		StartedAt: m.now(),
	}
	agg := availability.New(len(endpoints))
	var seq jsonrpc.IDSequence

	for _, ep := range endpoints {
		er := m.check(ctx, ep, seq.Next(), agg)
		run.Endpoints = append(run.Endpoints, er)
		m.Reporter.Endpoint(er)
	}

	run.Responded = agg.Responded
	if v, ok := agg.Value(); ok {
		run.Composite = &v
	}
	run.FinishedAt = m.now()

	m.Logger.Debug("monitor_run_done",
		zap.Int("responded", run.Responded),
		zap.Int("total", run.Total),
	)
	return run, m.Reporter.Summary(ctx, run)
}

func (m *Monitor) check(ctx context.Context, ep domain.Endpoint, id int, agg *availability.Aggregate) domain.EndpointReport {
	er := domain.EndpointReport{Endpoint: ep, RequestID: id}

	if err := ctx.Err(); err != nil {
		er.Status = domain.StatusTransportFailure
		er.Reason = probe.ClassifyFailure(err).Describe()
		er.CheckedAt = m.now()
		return er
	}

	body, err := jsonrpc.BuildRequest(m.Method, m.Params, id).Encode()
	if err != nil {
		// a request of strings and an int always encodes
		er.Status = domain.StatusTransportFailure
		er.Reason = err.Error()
		er.CheckedAt = m.now()
		return er
	}

	headers := probe.JSONHeaders()
	for k, v := range m.Headers {
		headers[k] = v
	}

	start := time.Now()
	reply, err := m.Sender.Send(ctx, string(ep), body, headers)
	er.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0
	er.CheckedAt = m.now()
	if err != nil {
		kind := probe.ClassifyFailure(err)
		er.Status = domain.StatusTransportFailure
		er.Reason = kind.Describe()
		if kind == probe.FailureDNS && m.Resolver != nil {
			d := probe.DiagnoseDNS(ctx, m.Resolver, string(ep))
			er.Reason += " dns=" + string(d.Class)
			m.Logger.Info("dns_check",
				zap.String("host", d.Host),
				zap.String("class", string(d.Class)),
				zap.Strings("nameservers", d.Nameservers),
				zap.String("cname", d.CNAME),
				zap.String("resolver_error", d.ResolverError),
			)
		}
		m.Logger.Debug("monitor_send_error",
			zap.String("endpoint", string(ep)),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return er
	}
	m.Logger.Debug("monitor_reply",
		zap.String("endpoint", string(ep)),
		zap.ByteString("body", reply),
	)

	doc, err := jsonrpc.ParseDocument(reply)
	if err != nil {
		er.Status = domain.StatusParseFailure
		er.Reason = err.Error()
		return er
	}

	out := jsonrpc.Classify(doc, id)
	switch out.Kind {
	case jsonrpc.KindResult:
		a := out.Result.Availability
		er.Status = domain.StatusResult
		er.ServiceName = out.Result.Name
		er.Availability = &a
		if a < 0 || a > 1 {
			m.Logger.Warn("availability_out_of_range",
				zap.String("endpoint", string(ep)),
				zap.Float64("availability", a),
			)
		}
	case jsonrpc.KindError:
		code := out.Error.Code
		er.Status = domain.StatusServiceError
		er.ErrorCode = &code
		er.ErrorMessage = out.Error.Message
	default:
		er.Status = domain.StatusInvalid
		er.Reason = out.Reason
	}
	agg.Observe(out)
	return er
}
