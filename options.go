package rhodium

import (
	"errors"
	"log/slog"

	"github.com/adamwoolhether/rhodium/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [New].
type Option func(*settings) error

type settings struct {
	httpOpts       []client.Option
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	requireToken   bool
}

func defaultSettings() settings {
	return settings{
		logger:         slog.Default(),
		tracerProvider: otel.GetTracerProvider(),
	}
}

// WithHTTPOptions passes options to the underlying transports, e.g.
// [client.WithTimeout] or [client.WithTransport].
func WithHTTPOptions(opts ...client.Option) Option {
	return func(s *settings) error {
		s.httpOpts = append(s.httpOpts, opts...)
		return nil
	}
}

// WithLogger injects a custom [slog.Logger].
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithTracerProvider sets the provider spans are created from. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		s.tracerProvider = tp
		return nil
	}
}

// WithRequireToken treats an empty access_token from the token endpoint as a
// decoding error. By default an empty token is sent as is.
func WithRequireToken() Option {
	return func(s *settings) error {
		s.requireToken = true
		return nil
	}
}
