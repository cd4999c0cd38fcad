package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/domain"
)

// Log records every endpoint and the summary as structured log entries.
type Log struct {
	Logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{Logger: logger}
}

func (l *Log) Endpoint(r domain.EndpointReport) {
	fields := []zap.Field{
		zap.String("endpoint", string(r.Endpoint)),
		zap.Int("request_id", r.RequestID),
		zap.String("status", string(r.Status)),
		zap.Float64("latency_ms", r.LatencyMS),
	}
	if r.Availability != nil {
		fields = append(fields, zap.String("service", r.ServiceName), zap.Float64("availability", *r.Availability))
	}
	if r.ErrorCode != nil {
		fields = append(fields, zap.Int("error_code", *r.ErrorCode), zap.String("error_message", r.ErrorMessage))
	}
	if r.Reason != "" {
		fields = append(fields, zap.String("reason", r.Reason))
	}

	if r.Status.Responded() {
		l.Logger.Info("endpoint_checked", fields...)
		return
	}
	l.Logger.Warn("endpoint_checked", fields...)
}

func (l *Log) Summary(_ context.Context, run domain.RunReport) error {
	fields := []zap.Field{
		zap.String("method", run.Method),
		zap.Int("responded", run.Responded),
		zap.Int("total", run.Total),
		zap.Duration("elapsed", run.FinishedAt.Sub(run.StartedAt)),
	}
	if run.Computable() {
		fields = append(fields, zap.Float64("composite", *run.Composite))
	} else {
		fields = append(fields, zap.Bool("composite_computable", false))
	}
	l.Logger.Info("run_finished", fields...)
	return nil
}
