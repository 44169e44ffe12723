package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// unmatchedRoute labels requests no ServeMux pattern matched.
const unmatchedRoute = "unmatched"

var (
	httpTracer      = otel.Tracer("ecoleta/http")
	httpMeter       = otel.Meter("ecoleta/http")
	requestSeconds  = newHistogram(httpMeter, "http.server.request.duration", "HTTP request duration in seconds", "s")
	requestsCounted = newCounter(httpMeter, "http.server.request.total", "Total HTTP requests by route")
)

// Tracing opens a server span per request and records request metrics.
// Spans and series are labeled with the matched ServeMux pattern
// ("GET /points/{id}"), never the raw path.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := httpTracer.Start(r.Context(), r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.request.method", r.Method)),
		)
		defer span.End()

		start := time.Now()
		wrapped := wrapResponseWriter(w)
		// ServeMux records the matched pattern on the request it is handed.
		req := r.WithContext(ctx)
		next.ServeHTTP(wrapped, req)

		route := routeOf(req)
		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}

		span.SetName(r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		requestSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
		requestsCounted.Add(ctx, 1, attrs)
	})
}

func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}

func newHistogram(m metric.Meter, name, desc, unit string) metric.Float64Histogram {
	h, err := m.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		otel.Handle(err)
	}
	return h
}

func newCounter(m metric.Meter, name, desc string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		otel.Handle(err)
	}
	return c
}
