// Package client provides the HTTP transport used by the Rhodium24
// adapter, built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithDefaultHeader("Ocp-Apim-Subscription-Key", key),
//	)
//
// # Making Requests
//
// Construct a [Request], then execute with [Client.Do]:
//
//	req, err := client.Request(ctx, u, http.MethodGet, client.WithBearerToken(token))
//	err = c.Do(req, client.WithDestination(&result))
//
// Any 2xx status is a success. Other statuses yield an [UnexpectedStatusError];
// 401 and 403 additionally match [ErrAuthFailure].
//
// # Form Bodies
//
// [WithForm] writes an application/x-www-form-urlencoded body with the fields
// in the order given:
//
//	req, err := client.Request(ctx, tokenURL, http.MethodPost,
//		client.WithForm(client.Field("grant_type", "client_credentials")),
//	)
//
// Outgoing requests carry the span context of their request context through
// the global OpenTelemetry text map propagator.
package client
