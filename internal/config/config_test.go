package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
logging:
  level: debug
database:
  driver: pgx
search:
  queries:
    - "site:linkedin.com/in Founder Munich"
  backfillMeta: true
enrichment:
  workers: 8
  tasks:
    region:
      maxTokens: 64
ranking:
  region: Europe
  country: Germany
  model: gpt-4o
  temperature: 0
scheduler:
  interval: 6h
  timezone: Europe/Berlin
pipeline:
  pause: 30s
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(dotenvPathEnv, filepath.Join(dir, "missing.env"))
	t.Setenv(databaseDSNEnv, "postgres://env/profiles")
	t.Setenv(openAIAPIKeyEnv, "sk-test")
	t.Setenv(portEnv, "8081")
	t.Setenv(logLevelEnv, "")
	t.Setenv(databaseDriverEnv, "")
	t.Setenv(openAIModelEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
	if cfg.Database.Driver != DriverPGX || cfg.Database.DSN != "postgres://env/profiles" {
		t.Fatalf("unexpected database: %+v", cfg.Database)
	}
	if len(cfg.Search.Queries) != 1 || !cfg.Search.BackfillMeta {
		t.Fatalf("unexpected search: %+v", cfg.Search)
	}
	if cfg.Search.MaxResults != 100 {
		t.Fatalf("default max results lost: %d", cfg.Search.MaxResults)
	}
	if cfg.Enrichment.Workers != 8 {
		t.Fatalf("unexpected workers: %d", cfg.Enrichment.Workers)
	}
	region := cfg.Task(TaskRegion)
	if region.MaxTokens != 64 || region.Model != "gpt-3.5-turbo" || region.Temperature == nil || *region.Temperature != 0.3 {
		t.Fatalf("unexpected region task: %+v", region)
	}
	if cfg.Ranking.Model != "gpt-4o" || cfg.Ranking.MaxTokens != 9999 || cfg.Ranking.Weights.EntrepreneurialSuccess != 0.4 {
		t.Fatalf("unexpected ranking: %+v", cfg.Ranking)
	}
	if cfg.Ranking.Temperature == nil || *cfg.Ranking.Temperature != 0 {
		t.Fatalf("explicit zero temperature lost: %v", cfg.Ranking.Temperature)
	}
	if cfg.Scheduler.Interval != 6*time.Hour || cfg.Scheduler.Location().String() != "Europe/Berlin" {
		t.Fatalf("unexpected scheduler: %+v", cfg.Scheduler)
	}
	if cfg.Pipeline.Pause != 30*time.Second {
		t.Fatalf("unexpected pause: %s", cfg.Pipeline.Pause)
	}
	if cfg.Completion.APIKey != "sk-test" || cfg.HTTP.Addr != ":8081" {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Completion, cfg.HTTP)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("TELEGRAM_BOT_TOKEN=bot\nTELEGRAM_CHAT_ID=42\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	t.Setenv(configPathEnv, "")
	t.Setenv(dotenvPathEnv, envPath)
	// registered with t.Setenv so the values loaded from the file are reset afterwards
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatIDEnv, "")
	os.Unsetenv(telegramTokenEnv)
	os.Unsetenv(telegramChatIDEnv)

	cfg := Load()
	if !cfg.Notifications.Telegram.Enabled() || cfg.Notifications.Telegram.ChatID != "42" {
		t.Fatalf("dotenv not applied: %+v", cfg.Notifications.Telegram)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Database.Driver = "mysql"
	cfg.Search.Queries = nil
	cfg.Enrichment.Workers = 0
	cfg.Scheduler.Interval = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		`unknown database driver "mysql"`,
		"no search queries configured",
		"enrichment workers",
		"scheduler interval",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateMemoryDriverNeedsNoDSN(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{Driver: DriverMemory}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
