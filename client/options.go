package client

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	headers           http.Header
	noFollowRedirects bool
	logger            *slog.Logger
}

// WithClient replaces the default [http.Client] used by the [Client].
// The given client is copied, so later changes to it have no effect.
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithDefaultHeader adds a header that is set on every outgoing request,
// unless the request already carries a value for it.
func WithDefaultHeader(key, value string) Option {
	return func(c *options) error {
		if key == "" {
			return errors.New("header key must not be empty")
		}
		if c.headers == nil {
			c.headers = make(http.Header)
		}
		c.headers.Set(key, value)
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// DoOption is a functional option for [Client.Do].
type DoOption func(options *doOpts) error

type doOpts struct {
	responseBody any
	rawBody      *[]byte
	expCode      int
}

// WithDestination decodes the HTTP response body as JSON into bodyTemplate.
// bodyTemplate must be a pointer.
func WithDestination[T any](bodyTemplate *T) DoOption {
	return func(opts *doOpts) error {
		if bodyTemplate == nil {
			return errors.New("destination must not be nil")
		}
		opts.responseBody = bodyTemplate

		return nil
	}
}

// WithRawDestination stores the whole, undecoded response body in dst.
func WithRawDestination(dst *[]byte) DoOption {
	return func(opts *doOpts) error {
		if dst == nil {
			return errors.New("destination must not be nil")
		}
		opts.rawBody = dst

		return nil
	}
}

// WithExpectedStatus requires the response to carry exactly code
// instead of any 2xx status.
func WithExpectedStatus(code int) DoOption {
	return func(opts *doOpts) error {
		if code < 100 || code > 599 {
			return errors.New("expected status must be a valid HTTP status code")
		}
		opts.expCode = code

		return nil
	}
}

// RequestOption is a functional option for [Request].
type RequestOption func(options *requestOpts) error

type requestOpts struct {
	body        any
	form        []FormField
	contentType *string
	bearer      *string
	headers     map[string][]string
}

// WithPayload sets the JSON-encoded request body.
func WithPayload(body any) RequestOption {
	return func(opts *requestOpts) error {
		opts.body = body

		return nil
	}
}

// WithForm sets a form-urlencoded request body. Fields are written
// in the order given.
func WithForm(fields ...FormField) RequestOption {
	return func(opts *requestOpts) error {
		if len(fields) == 0 {
			return errors.New("form must have at least one field")
		}
		opts.form = fields

		return nil
	}
}

// WithContentType overrides the default Content-Type header.
func WithContentType(contentType string) RequestOption {
	return func(opts *requestOpts) error {
		if contentType == "" {
			return errors.New("cannot use empty content type")
		}

		opts.contentType = &contentType

		return nil
	}
}

// WithBearerToken sets the Authorization header to "Bearer <token>".
// An empty token is sent as is.
func WithBearerToken(token string) RequestOption {
	return func(opts *requestOpts) error {
		opts.bearer = &token

		return nil
	}
}

// WithHeaders adds custom headers to the outgoing request.
func WithHeaders(headers map[string][]string) RequestOption {
	return func(opts *requestOpts) error {
		opts.headers = headers

		return nil
	}
}
