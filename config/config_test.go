package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamwoolhether/rhodium/config"
	"github.com/adamwoolhether/rhodium/errs"
	"github.com/google/go-cmp/cmp"
)

func validConfig() config.Config {
	return config.Config{
		ApiUrl:          "https://api.rhodium24.io/v3/",
		SubscriptionKey: "sub-key",
		TokenUrl:        "https://login.rhodium24.io/oauth/token",
		ClientId:        "client",
		ClientSecret:    "secret",
		Audience:        "https://api.rhodium24.io",
	}
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		mutate  func(*config.Config)
		missing []string
		invalid bool
	}{
		"valid": {
			mutate: func(*config.Config) {},
		},
		"missingApiUrl": {
			mutate:  func(c *config.Config) { c.ApiUrl = "" },
			missing: []string{"ApiUrl"},
		},
		"missingSubscriptionKey": {
			mutate:  func(c *config.Config) { c.SubscriptionKey = "" },
			missing: []string{"SubscriptionKey"},
		},
		"missingCredentials": {
			mutate: func(c *config.Config) {
				c.ClientId = ""
				c.ClientSecret = ""
				c.Audience = ""
			},
			missing: []string{"ClientId", "ClientSecret", "Audience"},
		},
		"everythingMissing": {
			mutate:  func(c *config.Config) { *c = config.Config{} },
			missing: []string{"ApiUrl", "SubscriptionKey", "TokenUrl", "ClientId", "ClientSecret", "Audience"},
		},
		"invalidTokenUrl": {
			mutate:  func(c *config.Config) { c.TokenUrl = "not a url" },
			invalid: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := config.Validate(cfg)
			if len(tc.missing) == 0 && !tc.invalid {
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}
				return
			}

			if !errors.Is(err, errs.ErrConfiguration) {
				t.Fatalf("exp configuration error, got: %v", err)
			}

			if diff := cmp.Diff(tc.missing, errs.MissingFields(err)); diff != "" {
				t.Errorf("missing fields mismatch (-want +got):\n%s", diff)
			}

			if tc.invalid {
				var ce *errs.ConfigurationError
				if !errors.As(err, &ce) || ce.Field != "TokenUrl" || ce.Reason == "" {
					t.Errorf("exp invalid TokenUrl error, got: %v", err)
				}
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	testCases := map[string]struct {
		mutate func(*config.Config)
		field  string
	}{
		"tokenUrl":     {mutate: func(c *config.Config) { c.TokenUrl = "" }, field: "TokenUrl"},
		"clientId":     {mutate: func(c *config.Config) { c.ClientId = "" }, field: "ClientId"},
		"clientSecret": {mutate: func(c *config.Config) { c.ClientSecret = "" }, field: "ClientSecret"},
		"audience":     {mutate: func(c *config.Config) { c.Audience = "" }, field: "Audience"},
		"firstWins": {
			mutate: func(c *config.Config) {
				c.ClientSecret = ""
				c.ClientId = ""
			},
			field: "ClientId",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			// Fields unrelated to the token exchange are not checked.
			cfg.ApiUrl = ""
			cfg.SubscriptionKey = ""
			tc.mutate(&cfg)

			err := config.ValidateToken(cfg)

			var ce *errs.ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("exp *errs.ConfigurationError, got: %T: %v", err, err)
			}
			if ce.Field != tc.field {
				t.Errorf("field = %q, want %q", ce.Field, tc.field)
			}
		})
	}

	if err := config.ValidateToken(validConfig()); err != nil {
		t.Fatalf("exp nil err for complete config, got: %v", err)
	}
}

func TestConfig_StringMasksSecrets(t *testing.T) {
	s := validConfig().String()

	for _, secret := range []string{"sub-key", "secret"} {
		if strings.Contains(s, secret) {
			t.Errorf("String() leaked %q: %s", secret, s)
		}
	}
	if !strings.Contains(s, "ClientId:client") {
		t.Errorf("String() = %s, want ClientId visible", s)
	}
}

const fileContents = `
ApiUrl: https://api.rhodium24.io/v3/
SubscriptionKey: sub-key
TokenUrl: https://login.rhodium24.io/oauth/token
ClientId: client
ClientSecret: secret
Audience: https://api.rhodium24.io
`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhodium.yaml")
	if err := os.WriteFile(path, []byte(fileContents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	if diff := cmp.Diff(validConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhodium.yaml")
	if err := os.WriteFile(path, []byte(fileContents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("RHODIUM_CLIENTSECRET", "from-env")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	if cfg.ClientSecret != "from-env" {
		t.Errorf("ClientSecret = %q, want %q", cfg.ClientSecret, "from-env")
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Chdir(t.TempDir())

	want := validConfig()
	t.Setenv("RHODIUM_APIURL", want.ApiUrl)
	t.Setenv("RHODIUM_SUBSCRIPTIONKEY", want.SubscriptionKey)
	t.Setenv("RHODIUM_TOKENURL", want.TokenUrl)
	t.Setenv("RHODIUM_CLIENTID", want.ClientId)
	t.Setenv("RHODIUM_CLIENTSECRET", want.ClientSecret)
	t.Setenv("RHODIUM_AUDIENCE", want.Audience)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingValues(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load("")
	if !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("exp configuration error, got: %v", err)
	}

	if got := len(errs.MissingFields(err)); got != 6 {
		t.Errorf("missing fields = %d, want 6", got)
	}
}

func TestLoad_ExplicitFileNotFound(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("exp error for missing explicit config file")
	}
}
