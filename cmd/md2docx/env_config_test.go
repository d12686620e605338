package main

// Notes:
// - loadEnvConfig: every variable is read through the injected getenv.
// - warnUnknownEnvVars: output goes through the logger to a buffer.
// - applyEnvConfig: env only fills fields the config file left empty.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/logger"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MD2DOCX_CONFIG":     "work",
		"MD2DOCX_THEME":      "classic",
		"MD2DOCX_ASSET_PATH": "/assets",
		"MD2DOCX_INPUT_DIR":  "/in",
		"MD2DOCX_OUTPUT_DIR": "/out",
		"MD2DOCX_AUTHOR":     "Ada",
		"MD2DOCX_PAGE_SIZE":  "a4",
		"MD2DOCX_WORKERS":    "3",
	}
	got := loadEnvConfig(func(k string) string { return vars[k] })

	want := envConfig{
		ConfigPath: "work",
		Theme:      "classic",
		AssetPath:  "/assets",
		InputDir:   "/in",
		OutputDir:  "/out",
		Author:     "Ada",
		PageSize:   "a4",
		Workers:    3,
	}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_Workers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  int
	}{
		{value: "", want: 0},
		{value: "4", want: 4},
		{value: "0", want: 0},
		{value: "-2", want: 0},
		{value: "four", want: 0},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(func(k string) string {
				if k == "MD2DOCX_WORKERS" {
					return tt.value
				}
				return ""
			})
			if got.Workers != tt.want {
				t.Errorf("Workers = %d, want %d", got.Workers, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf)

	warnUnknownEnvVars([]string{
		"PATH=/usr/bin",
		"MD2DOCX_AUTHOR=Ada",
		"MD2DOCX_AUTOR=typo",
		"MD2DOCX_THEMES=typo",
	}, log)

	out := buf.String()
	for _, name := range []string{"MD2DOCX_AUTOR", "MD2DOCX_THEMES"} {
		if !strings.Contains(out, name) {
			t.Errorf("missing warning for %s in %q", name, out)
		}
	}
	if strings.Contains(out, "MD2DOCX_AUTHOR ") || strings.Contains(out, "PATH") {
		t.Errorf("known or foreign variables should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Fill empty fields only
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Theme:     "classic",
		AssetPath: "/assets",
		InputDir:  "/env-in",
		OutputDir: "/env-out",
		Author:    "Env",
		PageSize:  "a4",
		Workers:   3,
	}

	t.Run("empty config takes env", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Theme.Name != "classic" || cfg.Assets.BasePath != "/assets" {
			t.Errorf("theme = %q, assets = %q", cfg.Theme.Name, cfg.Assets.BasePath)
		}
		if cfg.Input.DefaultDir != "/env-in" || cfg.Output.DefaultDir != "/env-out" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if cfg.Document.Author != "Env" || cfg.Theme.Page.Size != "a4" || cfg.Convert.Workers != 3 {
			t.Errorf("author = %q, size = %q, workers = %d", cfg.Document.Author, cfg.Theme.Page.Size, cfg.Convert.Workers)
		}
	})

	t.Run("config values are kept", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Document.Author = "File"
		cfg.Theme.Page.Size = "legal"
		cfg.Convert.Workers = 1
		applyEnvConfig(env, cfg)

		if cfg.Document.Author != "File" || cfg.Theme.Page.Size != "legal" || cfg.Convert.Workers != 1 {
			t.Errorf("config values overwritten: author %q, size %q, workers %d",
				cfg.Document.Author, cfg.Theme.Page.Size, cfg.Convert.Workers)
		}
	})
}
