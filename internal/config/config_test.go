package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
store_path: /tmp/leads.db
stepstone:
  base_url: https://stepstone.example
  page_delay: 2s
  fetch_timeout: 20s
search:
  keywords: AI Engineer
  location: Berlin
  radius: 30
  max_pages: 2
  date_filter: 7
research:
  model: sonar-pro
  api_key: secret
  timeout: 45s
sender:
  name: Jane Doe
  company: Doe Consulting
notification:
  type: slack
  webhook_url: https://hooks.slack.com/services/T/B/X
keywords:
  - AI
  - LLM
watch_interval: 30m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorePath != "/tmp/leads.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.StepStone.BaseURL != "https://stepstone.example" || cfg.StepStone.PageDelay != 2*time.Second {
		t.Errorf("StepStone = %+v", cfg.StepStone)
	}
	if cfg.Search.Keywords != "AI Engineer" || cfg.Search.MaxPages != 2 || cfg.Search.DateFilter != 7 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Research.Model != "sonar-pro" || cfg.Research.APIKey != "secret" || cfg.Research.Timeout != 45*time.Second {
		t.Errorf("Research = %+v", cfg.Research)
	}
	if cfg.Sender.Name != "Jane Doe" {
		t.Errorf("Sender = %+v", cfg.Sender)
	}
	if cfg.Notification.Type != "slack" {
		t.Errorf("Notification = %+v", cfg.Notification)
	}
	if len(cfg.Keywords) != 2 || cfg.Keywords[0] != "AI" {
		t.Errorf("Keywords = %v", cfg.Keywords)
	}
	if cfg.WatchInterval != 30*time.Minute {
		t.Errorf("WatchInterval = %v", cfg.WatchInterval)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `search: {keywords: AI}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorePath != defaultStorePath {
		t.Errorf("StorePath = %q, want default", cfg.StorePath)
	}
	if cfg.StepStone.PageDelay != defaultPageDelay || cfg.StepStone.FetchTimeout != defaultFetchTimeout {
		t.Errorf("StepStone = %+v, want defaults", cfg.StepStone)
	}
	if cfg.Search.MaxPages != defaultMaxPages {
		t.Errorf("MaxPages = %d, want default", cfg.Search.MaxPages)
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log", cfg.Notification.Type)
	}
	if cfg.WatchInterval != defaultWatchInterval {
		t.Errorf("WatchInterval = %v, want default", cfg.WatchInterval)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_PPLX_KEY", "from-env")

	cfg, err := Load(writeConfig(t, `
research:
  api_key: ${TEST_PPLX_KEY}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Research.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.Research.APIKey)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad date filter", `search: {date_filter: 5}`, "date_filter"},
		{"max pages too high", `search: {max_pages: 9}`, "max_pages"},
		{"negative radius", `search: {radius: -1}`, "radius"},
		{"bad page delay", `stepstone: {page_delay: soon}`, "page_delay"},
		{"unknown notifier", `notification: {type: pigeon}`, "notification.type"},
		{"slack without webhook", `notification: {type: slack}`, "webhook_url"},
		{"wrong webhook host", "notification:\n  type: slack\n  webhook_url: https://evil.example/x", "hooks.slack.com"},
		{"watch interval too short", `watch_interval: 5s`, "watch_interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Fatalf("Default config fails validation: %v", err)
	}
}
