package auth

import (
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// TokenResponse is the JSON body returned by the token endpoint. ExpiresIn
// accepts a number in any notation or a numeric string.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
	Scope       string      `json:"scope"`
	TokenType   string      `json:"token_type"`
}

// Option is a functional option for [New].
type Option func(*Acquirer)

// WithLogger injects a custom [slog.Logger]. Without it the logger of the
// Doer is used when it exposes one.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Acquirer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTracer sets the tracer spans are started from.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Acquirer) {
		if tracer != nil {
			a.tracer = tracer
		}
	}
}

// WithRequireToken makes an empty access_token in an otherwise successful
// response a decoding error instead of passing it through.
func WithRequireToken() Option {
	return func(a *Acquirer) {
		a.requireToken = true
	}
}
