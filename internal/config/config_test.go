package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Theme.Name != "" {
		t.Errorf("Theme.Name = %q, want empty", cfg.Theme.Name)
	}
	if cfg.Convert.Format != "auto" {
		t.Errorf("Convert.Format = %q, want auto", cfg.Convert.Format)
	}
	if cfg.Convert.Workers != 0 {
		t.Errorf("Convert.Workers = %d, want 0", cfg.Convert.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() unexpected error: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrFieldTooLong) {
				t.Fatalf("error = %v, want ErrFieldTooLong", err)
			}
			if !strings.Contains(err.Error(), "test.field") {
				t.Errorf("error %q should name the field", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "full valid config",
			mutate: func(c *Config) { *c = *validConfig() },
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Document.Title = strings.Repeat("a", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "author too long",
			mutate:  func(c *Config) { c.Document.Author = strings.Repeat("a", MaxAuthorLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "theme name too long",
			mutate:  func(c *Config) { c.Theme.Name = strings.Repeat("a", MaxNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "theme path may exceed name limit",
			mutate: func(c *Config) { c.Theme.Name = "./" + strings.Repeat("a", MaxNameLength+1) + ".yaml" },
		},
		{
			name:    "negative spacing scale",
			mutate:  func(c *Config) { c.Theme.SpacingScale = -0.5 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "spacing scale too large",
			mutate:  func(c *Config) { c.Theme.SpacingScale = MaxSpacingScale + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "orientation is case insensitive",
			mutate: func(c *Config) { c.Theme.Page.Orientation = "Landscape" },
		},
		{
			name:    "unknown orientation",
			mutate:  func(c *Config) { c.Theme.Page.Orientation = "sideways" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "margin below minimum",
			mutate:  func(c *Config) { c.Theme.Page.Margin = 0.1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "margin above maximum",
			mutate:  func(c *Config) { c.Theme.Page.Margin = 3.5 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "page size too long",
			mutate:  func(c *Config) { c.Theme.Page.Size = "tabloid-extra" },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Convert.Format = "rtf" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "empty format is auto",
			mutate: func(c *Config) { c.Convert.Format = "" },
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Convert.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Convert.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageConfig_IsZero(t *testing.T) {
	t.Parallel()

	if !(PageConfig{}).IsZero() {
		t.Error("empty PageConfig should be zero")
	}
	if (PageConfig{Margin: 1}).IsZero() {
		t.Error("PageConfig with margin should not be zero")
	}
}

func validConfig() *Config {
	return &Config{
		Input:    InputConfig{DefaultDir: "docs"},
		Output:   OutputConfig{DefaultDir: "out"},
		Document: DocumentConfig{Title: "Handbook", Author: "Ops Team"},
		Theme: ThemeConfig{
			Name:         "compact",
			Highlight:    "monokai",
			SpacingScale: 1.5,
			Page:         PageConfig{Size: "a4", Orientation: "portrait", Margin: 0.75},
		},
		Assets:  AssetsConfig{BasePath: "assets"},
		Convert: ConvertConfig{Format: "markdown", HTML: true, Workers: 4},
	}
}

const fullYAML = `input:
  defaultDir: docs
output:
  defaultDir: out
document:
  title: Handbook
  author: Ops Team
theme:
  name: compact
  highlight: monokai
  spacingScale: 1.5
  page:
    size: a4
    orientation: portrait
    margin: 0.75
assets:
  basePath: assets
convert:
  format: markdown
  html: true
  workers: 4
`

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadConfig_FilePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "work.yaml")
	writeConfig(t, path, fullYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if want := validConfig(); *cfg != *want {
		t.Errorf("LoadConfig() = %+v, want %+v", *cfg, *want)
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.yaml")
	writeConfig(t, path, "document:\n  author: Ada\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Document.Author != "Ada" {
		t.Errorf("Document.Author = %q, want Ada", cfg.Document.Author)
	}
	if cfg.Convert.Format != "auto" {
		t.Errorf("Convert.Format = %q, want default auto", cfg.Convert.Format)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unknown field", content: "document:\n  subtitle: x\n", wantErr: ErrConfigParse},
		{name: "malformed yaml", content: "document: [unclosed\n", wantErr: ErrConfigParse},
		{name: "empty file", content: "", wantErr: ErrConfigParse},
		{name: "wrong type", content: "convert:\n  workers: many\n", wantErr: ErrConfigParse},
		{name: "invalid value", content: "convert:\n  workers: 99\n", wantErr: ErrInvalidValue},
		{name: "field too long", content: "document:\n  author: " + strings.Repeat("x", MaxAuthorLength+1) + "\n", wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "cfg.yaml")
			writeConfig(t, path, tt.content)

			_, err := LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_MissingFilePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

// The name lookup tests change the working directory and environment, so
// they cannot run in parallel.

func isolateConfigDirs(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	t.Chdir(t.TempDir())

	dir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	return filepath.Join(dir, appDir)
}

func TestLoadConfig_NameLookup(t *testing.T) {
	t.Run("current directory yaml", func(t *testing.T) {
		isolateConfigDirs(t)
		writeConfig(t, "work.yaml", "document:\n  title: local\n")

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if cfg.Document.Title != "local" {
			t.Errorf("Document.Title = %q, want local", cfg.Document.Title)
		}
	})

	t.Run("current directory yml", func(t *testing.T) {
		isolateConfigDirs(t)
		writeConfig(t, "work.yml", "document:\n  title: yml\n")

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if cfg.Document.Title != "yml" {
			t.Errorf("Document.Title = %q, want yml", cfg.Document.Title)
		}
	})

	t.Run("current directory wins over user dir", func(t *testing.T) {
		userDir := isolateConfigDirs(t)
		writeConfig(t, "work.yaml", "document:\n  title: local\n")
		writeConfig(t, filepath.Join(userDir, "work.yaml"), "document:\n  title: user\n")

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if cfg.Document.Title != "local" {
			t.Errorf("Document.Title = %q, want local", cfg.Document.Title)
		}
	})

	t.Run("user config directory", func(t *testing.T) {
		userDir := isolateConfigDirs(t)
		writeConfig(t, filepath.Join(userDir, "work.yml"), "document:\n  title: user\n")

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if cfg.Document.Title != "user" {
			t.Errorf("Document.Title = %q, want user", cfg.Document.Title)
		}
	})

	t.Run("not found lists tried paths", func(t *testing.T) {
		isolateConfigDirs(t)

		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		for _, want := range []string{"absent.yaml", "absent.yml", appDir} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})

	t.Run("directory named like config is skipped", func(t *testing.T) {
		isolateConfigDirs(t)
		if err := os.Mkdir("work.yaml", 0o750); err != nil {
			t.Fatalf("Mkdir: %v", err)
		}

		if _, err := LoadConfig("work"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	userDir := isolateConfigDirs(t)

	got := SearchPaths("work")
	want := []string{
		"work.yaml",
		"work.yml",
		filepath.Join(userDir, "work.yaml"),
		filepath.Join(userDir, "work.yml"),
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}
}
