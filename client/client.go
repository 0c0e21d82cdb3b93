package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Client wraps the std-lib *http.Client.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c      *http.Client
	logger *slog.Logger
}

// Build constructs a Client from the given options.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		cpy := *opts.client
		client.c = &cpy
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if len(opts.headers) > 0 {
		transport = defaultHeaders{values: opts.headers, base: transport}
	}
	if opts.userAgent != "" {
		transport = defaultHeaders{values: http.Header{"User-Agent": {opts.userAgent}}, base: transport}
	}
	transport = propagate{base: transport}
	client.c.Transport = transport

	return client, nil
}

// Logger returns the logger the Client was built with.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Do will fire the request, and write the response to the given destination if any.
// Any 2xx status is treated as success unless WithExpectedStatus narrows it.
func (c *Client) Do(req *http.Request, opts ...DoOption) error {
	var settings doOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return err
		}
	}

	doFunc := func(resp *http.Response) error {
		switch {
		case settings.responseBody != nil:
			if err := json.NewDecoder(resp.Body).Decode(settings.responseBody); err != nil {
				return fmt.Errorf("%w: %w", ErrDecodingBody, err)
			}

		case settings.rawBody != nil:
			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}
			*settings.rawBody = b
		}

		return nil
	}

	return c.exec(req, settings.expCode, doFunc)
}

// Request instantiates an *http.Request with the provided information.
// It's just a convenience method that wraps the public Request func.
func (c *Client) Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	return Request(ctx, reqURL, method, opts...)
}

// exec runs the request and injected function on success after validating the status code.
func (c *Client) exec(req *http.Request, expCode int, fn execFn) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	defer func() {
		if _, err = io.Copy(io.Discard, resp.Body); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if !statusOK(resp.StatusCode, expCode) {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		sentinel := ErrUnexpectedStatusCode
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			sentinel = errors.Join(ErrUnexpectedStatusCode, ErrAuthFailure)
		}

		return &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        sentinel,
		}
	}

	if err := fn(resp); err != nil {
		return fmt.Errorf("exec fn: %w", err)
	}

	return nil
}

func statusOK(got, want int) bool {
	if want != 0 {
		return got == want
	}

	return got >= http.StatusOK && got < http.StatusMultipleChoices
}

// Request instantiates an *http.Request with the provided information.
// Content-Type defaults to `application/json` if unspecified via WithContentType,
// or to `application/x-www-form-urlencoded` when the body is set with WithForm.
func Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return nil, err
		}
	}

	var payload io.Reader
	contentType := "application/json"
	switch {
	case settings.form != nil:
		payload = strings.NewReader(encodeForm(settings.form))
		contentType = "application/x-www-form-urlencoded"
	case settings.body != nil:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(settings.body); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		payload = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	if settings.contentType != nil {
		contentType = *settings.contentType
	}

	if payload != nil || settings.contentType != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if settings.bearer != nil {
		req.Header.Set("Authorization", "Bearer "+*settings.bearer)
	}
	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	return req, nil
}

// encodeForm encodes the fields in the order given, escaping each value.
func encodeForm(fields []FormField) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}

	return b.String()
}
