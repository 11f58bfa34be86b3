package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", WithLookup(noEnv))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Contact.Delay.Std() != time.Second {
		t.Fatalf("expected 1s mock delay, got %s", cfg.Contact.Delay)
	}
}

func TestLoad_FileFormats(t *testing.T) {
	cases := map[string]string{
		"folio.yaml": `
server:
  addr: ":9000"
  allowedOrigins: ["https://example.com"]
contact:
  delay: 250ms
  webhookUrl: https://hooks.example.com/contact
theme:
  variant: light
`,
		"folio.toml": `
[server]
addr = ":9000"
allowedOrigins = ["https://example.com"]

[contact]
delay = "250ms"
webhookUrl = "https://hooks.example.com/contact"

[theme]
variant = "light"
`,
		"folio.json": `{
  "server": {"addr": ":9000", "allowedOrigins": ["https://example.com"]},
  "contact": {"delay": "250ms", "webhookUrl": "https://hooks.example.com/contact"},
  "theme": {"variant": "light"}
}`,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, name, contents), WithLookup(noEnv))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.Server.Addr != ":9000" {
				t.Fatalf("addr = %q", cfg.Server.Addr)
			}
			if diff := cmp.Diff([]string{"https://example.com"}, cfg.Server.AllowedOrigins); diff != "" {
				t.Fatalf("origins mismatch (-want +got):\n%s", diff)
			}
			if cfg.Contact.Delay.Std() != 250*time.Millisecond {
				t.Fatalf("delay = %s", cfg.Contact.Delay)
			}
			if cfg.Contact.WebhookURL != "https://hooks.example.com/contact" {
				t.Fatalf("webhook = %q", cfg.Contact.WebhookURL)
			}
			if cfg.Theme.Name != "folio" || cfg.Theme.Variant != "light" {
				t.Fatalf("theme = %+v", cfg.Theme)
			}
			if cfg.Contact.Timeout.Std() != 10*time.Second {
				t.Fatalf("expected untouched defaults to survive, got timeout %s", cfg.Contact.Timeout)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeFile(t, "folio.yaml", "server:\n  addr: \":9000\"\n")
	cfg, err := Load(path, WithLookup(envMap(map[string]string{
		"FOLIO_ADDR":                    ":7000",
		"FOLIO_CONTACT_DELAY":           "2s",
		"FOLIO_CONTACT_RATE_PER_MINUTE": "0",
		"FOLIO_ALLOWED_ORIGINS":         "https://a.example, https://b.example,",
		"FOLIO_METRICS":                 "false",
		"FOLIO_LOG_LEVEL":               "debug",
	})))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("env should win over file, got %q", cfg.Server.Addr)
	}
	if cfg.Contact.Delay.Std() != 2*time.Second || cfg.Contact.RatePerMinute != 0 || cfg.Server.Metrics {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
	if level, _ := cfg.Log.SlogLevel(); level.String() != "DEBUG" {
		t.Fatalf("level = %s", level)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("FOLIO_THEME_VARIANT", "")
	os.Unsetenv("FOLIO_THEME_VARIANT")
	dotenv := writeFile(t, ".env", "FOLIO_THEME_VARIANT=light\n")

	cfg, err := Load("", WithDotEnv(dotenv, filepath.Join(t.TempDir(), "missing.env")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.Variant != "light" {
		t.Fatalf("expected .env value, got %q", cfg.Theme.Variant)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct {
		path string
		env  map[string]string
	}{
		"missing file":     {path: filepath.Join(t.TempDir(), "nope.yaml")},
		"unknown ext":      {path: writeFile(t, "folio.ini", "x=1")},
		"bad duration":     {env: map[string]string{"FOLIO_CONTACT_DELAY": "soon"}},
		"negative delay":   {env: map[string]string{"FOLIO_CONTACT_DELAY": "-1s"}},
		"bad burst":        {env: map[string]string{"FOLIO_CONTACT_BURST": "0"}},
		"bad level":        {env: map[string]string{"FOLIO_LOG_LEVEL": "loud"}},
		"bad format":       {env: map[string]string{"FOLIO_LOG_FORMAT": "xml"}},
		"empty addr":       {env: map[string]string{"FOLIO_ADDR": " "}},
		"unknown json key": {path: writeFile(t, "bad.json", `{"server": {"port": 1}}`)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(tc.path, WithLookup(envMap(tc.env))); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
