//go:build integration

package e2e_test

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adamwoolhether/rhodium"
	"github.com/adamwoolhether/rhodium/client"
	"github.com/adamwoolhether/rhodium/config"
	"github.com/adamwoolhether/rhodium/errs"
	"github.com/adamwoolhether/rhodium/units"
)

// -------------------------------------------------------------------------
// Fake Rhodium24

const (
	clientID        = "integration-client"
	clientSecret    = "s3cr&t"
	audience        = "https://api.rhodium24.io"
	subscriptionKey = "integration-key"
	accessToken     = "eyJhbGciOiJub25lIn0.e30."
)

var (
	partyID   = uuid.MustParse("0b9e4c1a-52f7-4d3e-8c6b-7a1f2e9d4c30")
	projectID = uuid.MustParse("6f1c2b7e-3d4a-4e8b-9a51-0c2d7f3e8b14")

	documents = map[string][]byte{
		"quote.pdf":     []byte("%PDF-1.7 quote"),
		"bracket-l.pdf": []byte("%PDF-1.7 drawing"),
		"bracket-l.dxf": []byte("0\nSECTION\n2\nENTITIES\n0\nENDSEC\n0\nEOF\n"),
	}
)

type rhodium24 struct {
	tokens atomic.Int32
}

func newRhodium24(t *testing.T) (*rhodium24, string) {
	t.Helper()

	fixture, err := os.ReadFile(filepath.Join("..", "project", "testdata", "project_v3.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	var srv rhodium24

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", srv.token)
	mux.Handle("GET /api/v3/parties/{party}/projects/{project}", srv.authorized(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	mux.Handle("GET /api/v3/parties/{party}/projects/{project}/documents/{name}", srv.authorized(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := documents[r.PathValue("name")]
		if !ok {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(base64.StdEncoding.EncodeToString(doc)))
	}))

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &srv, ts.URL
}

func (s *rhodium24) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := r.PostForm
	if f.Get("grant_type") != "client_credentials" || f.Get("client_id") != clientID ||
		f.Get("client_secret") != clientSecret || f.Get("audience") != audience {
		http.Error(w, `{"error":"access_denied"}`, http.StatusUnauthorized)
		return
	}

	s.tokens.Add(1)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"access_token":%q,"expires_in":86400,"scope":"read:projects","token_type":"Bearer"}`, accessToken)
}

func (s *rhodium24) authorized(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(rhodium.SubscriptionKeyHeader) != subscriptionKey {
			http.Error(w, "invalid subscription key", http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+accessToken {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if _, err := uuid.Parse(r.PathValue("party")); err != nil {
			http.Error(w, "invalid party id", http.StatusBadRequest)
			return
		}

		next(w, r)
	})
}

// -------------------------------------------------------------------------
// Helpers

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()

	contents := fmt.Sprintf(`ApiUrl: %s/api/v3/
SubscriptionKey: %s
TokenUrl: %s/oauth/token
ClientId: %s
ClientSecret: %q
Audience: %s
`, baseURL, subscriptionKey, baseURL, clientID, clientSecret, audience)

	path := filepath.Join(t.TempDir(), "rhodium.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	return path
}

func loadConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()

	cfg, err := config.Load(writeConfig(t, baseURL))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	return cfg
}

func newClient(t *testing.T, cfg config.Config) *rhodium.Client {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	c, err := rhodium.New(cfg,
		rhodium.WithLogger(log),
		rhodium.WithHTTPOptions(client.WithTimeout(10*time.Second), client.WithUserAgent("rhodium-e2e/1.0")),
	)
	if err != nil {
		t.Fatalf("building client: %v", err)
	}

	return c
}

// -------------------------------------------------------------------------
// Tests

func TestE2E_ProjectAndDocuments(t *testing.T) {
	srv, baseURL := newRhodium24(t)
	c := newClient(t, loadConfig(t, baseURL))

	p, err := c.GetProject(t.Context(), partyID, projectID)
	if err != nil {
		t.Fatalf("getting project: %v", err)
	}

	if want := units.Euro(decimal.RequireFromString("121.61")); p.Totals == nil || p.Totals.Total == nil || !p.Totals.Total.Equal(want) {
		t.Errorf("exp total %v, got %+v", want, p.Totals)
	}

	names := p.FileNames()
	for _, name := range names {
		doc, err := c.GetDocument(t.Context(), partyID, projectID, name)
		if err != nil {
			t.Fatalf("getting document %s: %v", name, err)
		}
		if string(doc) != string(documents[name]) {
			t.Errorf("document %s: exp %q, got %q", name, documents[name], doc)
		}
	}

	// One token per call, nothing cached.
	if got, want := srv.tokens.Load(), int32(1+len(names)); got != want {
		t.Errorf("exp %d tokens issued, got %d", want, got)
	}
}

func TestE2E_ProjectDocuments(t *testing.T) {
	_, baseURL := newRhodium24(t)

	docs, err := newClient(t, loadConfig(t, baseURL)).GetProjectDocuments(t.Context(), partyID, projectID)
	if err != nil {
		t.Fatalf("getting documents: %v", err)
	}

	if len(docs) != len(documents) {
		t.Errorf("exp %d documents, got %d", len(documents), len(docs))
	}
}

func TestE2E_WrongSecret(t *testing.T) {
	_, baseURL := newRhodium24(t)

	cfg := loadConfig(t, baseURL)
	cfg.ClientSecret = "wrong"

	_, err := newClient(t, cfg).GetProject(t.Context(), partyID, projectID)

	var te *errs.TransportError
	if !errors.As(err, &te) || te.Op != "token" {
		t.Fatalf("exp token transport error, got: %v", err)
	}
	if !errors.Is(err, client.ErrAuthFailure) {
		t.Errorf("exp auth failure, got: %v", err)
	}
}

func TestE2E_WrongSubscriptionKey(t *testing.T) {
	_, baseURL := newRhodium24(t)

	cfg := loadConfig(t, baseURL)
	cfg.SubscriptionKey = "wrong"

	_, err := newClient(t, cfg).GetDocument(t.Context(), partyID, projectID, "quote.pdf")

	var te *errs.TransportError
	if !errors.As(err, &te) || te.Op != "document" {
		t.Fatalf("exp document transport error, got: %v", err)
	}
	if !errors.Is(err, client.ErrAuthFailure) {
		t.Errorf("exp auth failure, got: %v", err)
	}
}

func TestE2E_UnknownDocument(t *testing.T) {
	_, baseURL := newRhodium24(t)

	_, err := newClient(t, loadConfig(t, baseURL)).GetDocument(t.Context(), partyID, projectID, "missing.step")

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("exp 404, got: %v", err)
	}
}
