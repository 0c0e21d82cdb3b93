package client

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// defaultHeaders is an http.RoundTripper that sets persistent headers
// on every request that does not already carry them.
type defaultHeaders struct {
	values http.Header
	base   http.RoundTripper
}

func (dh defaultHeaders) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	for k, v := range dh.values {
		if cpy.Header.Get(k) != "" {
			continue
		}
		cpy.Header[k] = v
	}

	return dh.base.RoundTrip(cpy)
}

// propagate is an http.RoundTripper writing the span context of the
// request into its headers using the global text map propagator.
type propagate struct {
	base http.RoundTripper
}

func (p propagate) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	otel.GetTextMapPropagator().Inject(cpy.Context(), propagation.HeaderCarrier(cpy.Header))

	return p.base.RoundTrip(cpy)
}
