package main

// Notes:
// - loadEnvConfig: we test every MDCARD_* variable. Invalid/negative values
//   for timeout and workers are tested to verify graceful handling (ignored,
//   not errors).
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set variables override the config file and
//   that watermark text auto-enables the watermark.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jaydendev/mdcard/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MDCARD_CONFIG", "work")
		t.Setenv("MDCARD_THEME", "midnight")
		t.Setenv("MDCARD_TIMEOUT", "2m")
		t.Setenv("MDCARD_OUTPUT_DIR", "/cards")
		t.Setenv("MDCARD_ASSET_PATH", "/assets")
		t.Setenv("MDCARD_WATERMARK_TEXT", "小林的笔记")
		t.Setenv("MDCARD_WORKERS", "3")

		cfg := loadEnvConfig()

		want := envConfig{
			ConfigPath:    "work",
			Theme:         "midnight",
			Timeout:       2 * time.Minute,
			OutputDir:     "/cards",
			AssetPath:     "/assets",
			WatermarkText: "小林的笔记",
			Workers:       3,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("invalid timeout ignored", func(t *testing.T) {
		t.Setenv("MDCARD_TIMEOUT", "soon")

		if cfg := loadEnvConfig(); cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0 (invalid value ignored)", cfg.Timeout)
		}
	})

	t.Run("negative timeout ignored", func(t *testing.T) {
		t.Setenv("MDCARD_TIMEOUT", "-5s")

		if cfg := loadEnvConfig(); cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0 (negative value ignored)", cfg.Timeout)
		}
	})

	t.Run("invalid workers ignored", func(t *testing.T) {
		t.Setenv("MDCARD_WORKERS", "many")

		if cfg := loadEnvConfig(); cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0 (invalid value ignored)", cfg.Workers)
		}
	})

	t.Run("zero workers ignored", func(t *testing.T) {
		t.Setenv("MDCARD_WORKERS", "0")

		if cfg := loadEnvConfig(); cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Unknown variable detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("warns on unknown MDCARD_ vars in sorted order", func(t *testing.T) {
		t.Setenv("MDCARD_THEMES", "paper")
		t.Setenv("MDCARD_COPY", "1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		want := "warning: unknown environment variable MDCARD_COPY (typo?)\n" +
			"warning: unknown environment variable MDCARD_THEMES (typo?)\n"
		if buf.String() != want {
			t.Errorf("warnUnknownEnvVars() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("no warning for known vars", func(t *testing.T) {
		for name := range knownEnvVars {
			t.Setenv(name, "x")
		}

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if buf.Len() > 0 {
			t.Errorf("should not warn for known vars, got: %s", buf.String())
		}
	})

	t.Run("ignores other prefixes", func(t *testing.T) {
		t.Setenv("MD2CARD_THEME", "paper")
		t.Setenv("ROD_NO_SANDBOX", "1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if buf.Len() > 0 {
			t.Errorf("should only inspect MDCARD_ vars, got: %s", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Config application with priority
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides config file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme = "paper"
		cfg.Output.DefaultDir = "/from-file"
		cfg.Assets.BasePath = "/file-assets"
		cfg.Watermark.Text = "文件水印"

		applyEnvConfig(&envConfig{
			Theme:         "midnight",
			OutputDir:     "/from-env",
			AssetPath:     "/env-assets",
			WatermarkText: "环境水印",
		}, cfg)

		if cfg.Theme != "midnight" {
			t.Errorf("Theme = %q, want midnight", cfg.Theme)
		}
		if cfg.Output.DefaultDir != "/from-env" {
			t.Errorf("Output.DefaultDir = %q, want /from-env", cfg.Output.DefaultDir)
		}
		if cfg.Assets.BasePath != "/env-assets" {
			t.Errorf("Assets.BasePath = %q, want /env-assets", cfg.Assets.BasePath)
		}
		if cfg.Watermark.Text != "环境水印" {
			t.Errorf("Watermark.Text = %q, want 环境水印", cfg.Watermark.Text)
		}
	})

	t.Run("watermark text re-enables a disabled watermark", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Watermark.Enabled = false

		applyEnvConfig(&envConfig{WatermarkText: "x"}, cfg)

		if !cfg.Watermark.Enabled {
			t.Error("Watermark.Enabled should be true (auto-enabled)")
		}
	})

	t.Run("empty env values do not affect config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme = "mint"
		cfg.Watermark.Enabled = false
		cfg.Output.DefaultDir = "/keep"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Theme != "mint" || cfg.Watermark.Enabled || cfg.Output.DefaultDir != "/keep" {
			t.Errorf("config changed by empty env: %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Timeout priority and validation
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	withTimeout := func(s string) *config.Config {
		cfg := config.DefaultConfig()
		cfg.Export.Timeout = s
		return cfg
	}

	tests := []struct {
		name    string
		flag    string
		env     *envConfig
		cfg     *config.Config
		want    time.Duration
		wantErr error
	}{
		{name: "nothing set", cfg: config.DefaultConfig(), want: 0},
		{name: "config only", cfg: withTimeout("45s"), want: 45 * time.Second},
		{name: "env beats config", env: &envConfig{Timeout: time.Minute}, cfg: withTimeout("45s"), want: time.Minute},
		{name: "flag beats env", flag: "10s", env: &envConfig{Timeout: time.Minute}, cfg: withTimeout("45s"), want: 10 * time.Second},
		{name: "nil env", cfg: withTimeout("1m"), want: time.Minute},
		{name: "flag unparsable", flag: "fast", cfg: config.DefaultConfig(), wantErr: ErrInvalidTimeout},
		{name: "flag zero", flag: "0s", cfg: config.DefaultConfig(), wantErr: ErrInvalidTimeout},
		{name: "flag negative", flag: "-1s", cfg: config.DefaultConfig(), wantErr: ErrInvalidTimeout},
		{name: "flag too long", flag: "11m", cfg: config.DefaultConfig(), wantErr: ErrInvalidTimeout},
		{name: "flag at max", flag: "10m", cfg: config.DefaultConfig(), want: config.MaxTimeout},
		{name: "config unparsable", cfg: withTimeout("later"), wantErr: config.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env, tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveTimeout() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTimeout() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadSettings - File, env and default layering
// ---------------------------------------------------------------------------

func TestLoadSettings(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "mdcard.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return path
	}

	t.Run("defaults without config", func(t *testing.T) {
		te := newTestEnv(newMockConverter(), "")

		cfg, envCfg, err := loadSettings("", te.Environment)
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if !cfg.Watermark.Enabled || cfg.Theme != "" {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
		if envCfg == nil {
			t.Error("envCfg should not be nil")
		}
	})

	t.Run("flag path loads file", func(t *testing.T) {
		path := writeConfig(t, "theme: mint\nwatermark:\n  enabled: false\n")
		te := newTestEnv(newMockConverter(), "")

		cfg, _, err := loadSettings(path, te.Environment)
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.Theme != "mint" || cfg.Watermark.Enabled {
			t.Errorf("cfg = %+v, want theme mint with watermark off", cfg)
		}
	})

	t.Run("MDCARD_CONFIG used when flag empty", func(t *testing.T) {
		t.Setenv("MDCARD_CONFIG", writeConfig(t, "theme: glass\n"))
		te := newTestEnv(newMockConverter(), "")

		cfg, _, err := loadSettings("", te.Environment)
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.Theme != "glass" {
			t.Errorf("Theme = %q, want glass", cfg.Theme)
		}
	})

	t.Run("flag beats MDCARD_CONFIG", func(t *testing.T) {
		t.Setenv("MDCARD_CONFIG", writeConfig(t, "theme: glass\n"))
		te := newTestEnv(newMockConverter(), "")

		cfg, _, err := loadSettings(writeConfig(t, "theme: mint\n"), te.Environment)
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.Theme != "mint" {
			t.Errorf("Theme = %q, want mint", cfg.Theme)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("MDCARD_THEME", "midnight")
		te := newTestEnv(newMockConverter(), "")

		cfg, _, err := loadSettings(writeConfig(t, "theme: mint\n"), te.Environment)
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.Theme != "midnight" {
			t.Errorf("Theme = %q, want midnight", cfg.Theme)
		}
	})

	t.Run("missing named config has hint", func(t *testing.T) {
		te := newTestEnv(newMockConverter(), "")

		_, _, err := loadSettings(filepath.Join(t.TempDir(), "absent.yaml"), te.Environment)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadSettings() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "--config") {
			t.Errorf("error should carry a hint, got: %v", err)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		te := newTestEnv(newMockConverter(), "")

		_, _, err := loadSettings(writeConfig(t, "theme: [unclosed\n"), te.Environment)
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("loadSettings() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown env var warns on stderr", func(t *testing.T) {
		t.Setenv("MDCARD_WORKER", "2")
		te := newTestEnv(newMockConverter(), "")

		if _, _, err := loadSettings("", te.Environment); err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if !strings.Contains(te.stderr.String(), "MDCARD_WORKER (typo?)") {
			t.Errorf("stderr = %q, want typo warning", te.stderr.String())
		}
	})
}
