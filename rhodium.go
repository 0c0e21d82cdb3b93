// Package rhodium is a client for the Rhodium24 REST API. Every call
// exchanges the configured client credentials for a fresh bearer token and
// then fetches a document or a project record with it.
//
//	c, err := rhodium.New(cfg, rhodium.WithHTTPOptions(client.WithTimeout(30*time.Second)))
//	doc, err := c.GetDocument(ctx, partyID, projectID, "drawing.pdf")
//	p, err := c.GetProject(ctx, partyID, projectID)
//
// Failures are reported as [errs.ConfigurationError], [errs.TransportError]
// or [errs.DecodingError]. Nothing is retried or cached.
package rhodium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/rhodium/auth"
	"github.com/adamwoolhether/rhodium/client"
	"github.com/adamwoolhether/rhodium/config"
	"github.com/adamwoolhether/rhodium/errs"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SubscriptionKeyHeader carries the API subscription key on every API call.
const SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

const tracerScope = "github.com/adamwoolhether/rhodium"

// Client calls the Rhodium24 API. It holds only read-only configuration and
// its transports, and is safe for concurrent use.
type Client struct {
	cfg    config.Config
	apiURL *url.URL
	api    *client.Client
	tokens *auth.Acquirer
	logger *slog.Logger
	tracer trace.Tracer
}

// New validates cfg and constructs a Client. Every missing field is reported
// as its own [errs.ConfigurationError].
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	apiURL, err := url.Parse(cfg.ApiUrl)
	if err != nil || !apiURL.IsAbs() {
		return nil, errs.NewInvalidConfigurationError("ApiUrl", "must be an absolute URL")
	}

	settings := defaultSettings()
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	base := append([]client.Option{client.WithLogger(settings.logger)}, settings.httpOpts...)

	api, err := client.Build(append(base, client.WithDefaultHeader(SubscriptionKeyHeader, cfg.SubscriptionKey))...)
	if err != nil {
		return nil, fmt.Errorf("building api transport: %w", err)
	}

	// The token endpoint is a different host and never sees the subscription key.
	tokenTransport, err := client.Build(base...)
	if err != nil {
		return nil, fmt.Errorf("building token transport: %w", err)
	}

	tracer := settings.tracerProvider.Tracer(tracerScope)

	authOpts := []auth.Option{auth.WithTracer(tracer)}
	if settings.requireToken {
		authOpts = append(authOpts, auth.WithRequireToken())
	}

	c := Client{
		cfg:    cfg,
		apiURL: apiURL,
		api:    api,
		tokens: auth.New(cfg, tokenTransport, authOpts...),
		logger: settings.logger,
		tracer: tracer,
	}

	return &c, nil
}

// Config returns the configuration the Client was built with.
func (c *Client) Config() config.Config {
	return c.cfg
}

// fetch acquires a token and performs a GET on the API path built from
// escaped segments, handing the response to doOpt. Token failures are returned as
// they are; failures of the GET itself are classified for op.
func (c *Client) fetch(ctx context.Context, op string, params []errs.Param, doOpt client.DoOption, segments ...string) error {
	token, err := c.tokens.Acquire(ctx)
	if err != nil {
		return err
	}

	reqURL := c.apiURL.JoinPath(escapeSegments(segments)...)

	req, err := c.api.Request(ctx, reqURL, http.MethodGet, client.WithBearerToken(token))
	if err != nil {
		return errs.NewTransportError(op, fmt.Errorf("building request: %w", err), params...)
	}

	if err := c.api.Do(req, doOpt); err != nil {
		if errors.Is(err, client.ErrDecodingBody) {
			return errs.NewDecodingError(op, err)
		}
		return errs.NewTransportError(op, err, params...)
	}

	return nil
}

// escapeSegments path-escapes each segment so JoinPath neither splits nor
// cleans it and a stray '%' cannot invalidate the joined path.
func escapeSegments(segments []string) []string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	return escaped
}

// fail marks span as failed with err and returns err.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
