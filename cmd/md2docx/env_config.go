package main

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/logger"
)

// envPrefix is the prefix of every environment variable the CLI reads.
const envPrefix = "MD2DOCX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2DOCX_CONFIG: config file name or path
	Theme      string // MD2DOCX_THEME: theme name or path
	AssetPath  string // MD2DOCX_ASSET_PATH: theme override directory
	InputDir   string // MD2DOCX_INPUT_DIR: default input directory
	OutputDir  string // MD2DOCX_OUTPUT_DIR: default output directory
	Author     string // MD2DOCX_AUTHOR: document author
	PageSize   string // MD2DOCX_PAGE_SIZE: letter, a4, legal
	Workers    int    // MD2DOCX_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2DOCX_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2DOCX_CONFIG":     true,
	"MD2DOCX_THEME":      true,
	"MD2DOCX_ASSET_PATH": true,
	"MD2DOCX_INPUT_DIR":  true,
	"MD2DOCX_OUTPUT_DIR": true,
	"MD2DOCX_AUTHOR":     true,
	"MD2DOCX_PAGE_SIZE":  true,
	"MD2DOCX_WORKERS":    true,
}

// loadEnvConfig reads the recognized MD2DOCX_* values. An unparsable or
// non-positive worker count is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2DOCX_CONFIG"),
		Theme:      getenv("MD2DOCX_THEME"),
		AssetPath:  getenv("MD2DOCX_ASSET_PATH"),
		InputDir:   getenv("MD2DOCX_INPUT_DIR"),
		OutputDir:  getenv("MD2DOCX_OUTPUT_DIR"),
		Author:     getenv("MD2DOCX_AUTHOR"),
		PageSize:   getenv("MD2DOCX_PAGE_SIZE"),
	}

	if workers := getenv("MD2DOCX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for every unrecognized MD2DOCX_*
// variable, to catch typos like MD2DOCX_AUTOR.
func warnUnknownEnvVars(environ []string, log *logger.Logger) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.UnknownEnv(name)
		}
	}
}

// applyEnvConfig fills config fields the config file left empty or zero.
// Flags are applied later by mergeFlags and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" && cfg.Theme.Name == "" {
		cfg.Theme.Name = env.Theme
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Author != "" && cfg.Document.Author == "" {
		cfg.Document.Author = env.Author
	}
	if env.PageSize != "" && cfg.Theme.Page.Size == "" {
		cfg.Theme.Page.Size = env.PageSize
	}
	if env.Workers > 0 && cfg.Convert.Workers == 0 {
		cfg.Convert.Workers = env.Workers
	}
}
