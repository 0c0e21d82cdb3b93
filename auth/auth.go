// Package auth exchanges client credentials for a bearer access token
// using the OAuth2 client-credentials grant.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/rhodium/client"
	"github.com/adamwoolhether/rhodium/config"
	"github.com/adamwoolhether/rhodium/errs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	op          = "token"
	grantType   = "client_credentials"
	tracerScope = "github.com/adamwoolhether/rhodium/auth"
)

// ErrEmptyToken is returned, when WithRequireToken is set, for a token
// response without an access token.
var ErrEmptyToken = errors.New("token response has no access_token")

// Doer executes a request, handing the response to the given options.
// [client.Client] satisfies it.
type Doer interface {
	Do(req *http.Request, opts ...client.DoOption) error
}

// Acquirer fetches a fresh access token on every call. It keeps no token
// between calls and is safe for concurrent use.
type Acquirer struct {
	cfg          config.Config
	doer         Doer
	logger       *slog.Logger
	tracer       trace.Tracer
	requireToken bool
}

// New constructs an Acquirer. The configuration is checked on each call to
// Acquire rather than here.
func New(cfg config.Config, doer Doer, opts ...Option) *Acquirer {
	a := Acquirer{
		cfg:    cfg,
		doer:   doer,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerScope),
	}

	if l, ok := doer.(interface{ Logger() *slog.Logger }); ok && l.Logger() != nil {
		a.logger = l.Logger()
	}

	for _, opt := range opts {
		opt(&a)
	}

	return &a
}

// Acquire performs the client-credentials exchange against the token URL and
// returns the access token. A missing TokenUrl, ClientId, ClientSecret or
// Audience fails with an [errs.ConfigurationError] before any request is sent.
func (a *Acquirer) Acquire(ctx context.Context) (string, error) {
	if err := config.ValidateToken(a.cfg); err != nil {
		return "", err
	}

	tokenURL, err := url.Parse(a.cfg.TokenUrl)
	if err != nil || !tokenURL.IsAbs() {
		return "", errs.NewInvalidConfigurationError("TokenUrl", "must be an absolute URL")
	}

	ctx, span := a.tracer.Start(ctx, "rhodium.token", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("token.url", tokenURL.Redacted()))
	defer span.End()

	token, err := a.exchange(ctx, tokenURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token retrieval failed")
		return "", err
	}

	return token, nil
}

func (a *Acquirer) exchange(ctx context.Context, tokenURL *url.URL) (string, error) {
	req, err := client.Request(ctx, tokenURL, http.MethodPost, client.WithForm(
		client.Field("grant_type", grantType),
		client.Field("client_id", a.cfg.ClientId),
		client.Field("client_secret", a.cfg.ClientSecret),
		client.Field("audience", a.cfg.Audience),
	))
	if err != nil {
		return "", errs.NewTransportError(op, fmt.Errorf("building request: %w", err))
	}

	var resp TokenResponse
	if err := a.doer.Do(req, client.WithDestination(&resp)); err != nil {
		if errors.Is(err, client.ErrDecodingBody) {
			return "", errs.NewDecodingError(op, err)
		}
		return "", errs.NewTransportError(op, err)
	}

	if resp.AccessToken == "" && a.requireToken {
		return "", errs.NewDecodingError(op, ErrEmptyToken)
	}

	a.logger.DebugContext(ctx, "token acquired", "token_type", resp.TokenType, "expires_in", resp.ExpiresIn, "scope", resp.Scope)

	return resp.AccessToken, nil
}
