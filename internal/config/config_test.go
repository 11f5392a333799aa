package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIAPIKeyEnv, "")
	t.Setenv(openAIModelEnv, "")
	t.Setenv(databaseDSNEnv, "")

	cfg := Load()
	if cfg.Feed.Workers != 5 {
		t.Fatalf("expected default worker count, got %d", cfg.Feed.Workers)
	}
	if cfg.Browser.MinItems != 10 || cfg.Browser.MaxScrolls != 15 {
		t.Fatalf("unexpected scroll defaults: %+v", cfg.Browser)
	}
	if cfg.Browser.Settle() != 2*time.Second {
		t.Fatalf("unexpected settle default: %v", cfg.Browser.Settle())
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model default: %q", cfg.OpenAI.Model)
	}
	if cfg.Output.AggregateFile != "data.json" || cfg.Output.ResponseFile != "llm_response.json" {
		t.Fatalf("unexpected artifact defaults: %+v", cfg.Output)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("feed:\n  workers: 2\nbrowser:\n  maxScrolls: 3\noutput:\n  dir: /tmp/out\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(openAIAPIKeyEnv, "")
	t.Setenv(openAIModelEnv, "")
	t.Setenv(databaseDSNEnv, "")

	cfg := Load()
	if cfg.Feed.Workers != 2 {
		t.Fatalf("file override lost, workers=%d", cfg.Feed.Workers)
	}
	if cfg.Browser.MaxScrolls != 3 {
		t.Fatalf("file override lost, maxScrolls=%d", cfg.Browser.MaxScrolls)
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Fatalf("file override lost, dir=%q", cfg.Output.Dir)
	}
	if cfg.Browser.MinItems != 10 {
		t.Fatalf("untouched defaults must survive the merge, minItems=%d", cfg.Browser.MinItems)
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIAPIKeyEnv, "sk-test")
	t.Setenv(openAIModelEnv, "gpt-4o")
	t.Setenv(databaseDSNEnv, "postgres://localhost/runs")

	cfg := Load()
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("api key override lost")
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("model override lost, got %q", cfg.OpenAI.Model)
	}
	if cfg.Database.DSN != "postgres://localhost/runs" {
		t.Fatalf("dsn override lost")
	}
}

func TestTimeoutAccessorsGuardNonPositiveValues(t *testing.T) {
	t.Parallel()

	if got := (FeedConfig{}).Timeout(); got != 20*time.Second {
		t.Fatalf("unexpected feed fallback: %v", got)
	}
	if got := (TaxonomyConfig{TimeoutSeconds: -1}).Timeout(); got != 30*time.Second {
		t.Fatalf("unexpected taxonomy fallback: %v", got)
	}
	if got := (OpenAIConfig{TimeoutSeconds: 15}).Timeout(); got != 15*time.Second {
		t.Fatalf("expected configured value, got %v", got)
	}
	if got := (BrowserConfig{PageWaitSeconds: 0}).PageWait(); got != 10*time.Second {
		t.Fatalf("unexpected page wait fallback: %v", got)
	}
}
