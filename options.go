package runpod

import (
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
//
// The request timeout from [Config] still applies on top of the client's own
// timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header. Defaults to [UserAgent].
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request logging.
//
// Requests are logged at debug level and failures at warn level. The default
// logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithDebug enables wire-level dumps of requests and responses through the
// configured logger. Authorization headers are included, so keep it off in
// production.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithMeterProvider records request counts and durations with mp.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Client) {
		c.meterProvider = mp
	}
}

// WithTracerProvider creates a client span for every request with tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracerProvider = tp
	}
}
