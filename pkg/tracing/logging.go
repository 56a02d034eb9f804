package tracing

import (
	"context"
	"log/slog"
	"time"
)

var (
	_ Tracer = (*LoggingTracer)(nil)
	_ Span   = (*stepSpan)(nil)
)

// LoggingTracer logs every finished span as a debug record carrying the step
// name, its elapsed time and any baggage.
type LoggingTracer struct {
	logger *slog.Logger
}

// NewLoggingTracer creates a [LoggingTracer]. A nil logger means
// [slog.Default] at the time each span finishes.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
	}
}

//nolint:ireturn
func (l *LoggingTracer) StartSpan(operationName string) Span {
	return &stepSpan{
		tracer: l,
		step:   operationName,
		start:  time.Now(),
	}
}

type stepSpan struct {
	start  time.Time
	tracer *LoggingTracer
	step   string
	attrs  []slog.Attr
}

func (s *stepSpan) SetBaggageItem(key string, value any) {
	s.attrs = append(s.attrs, slog.Any(key, value))
}

func (s *stepSpan) Finish() {
	logger := s.tracer.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := make([]slog.Attr, 0, len(s.attrs)+2)
	attrs = append(attrs,
		slog.String("step", s.step),
		slog.Float64("time_ms", float64(time.Since(s.start).Microseconds())/1e3),
	)
	attrs = append(attrs, s.attrs...)

	logger.LogAttrs(context.Background(), slog.LevelDebug, "step finished", attrs...)
}
