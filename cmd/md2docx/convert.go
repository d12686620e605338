package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/logger"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrConversionFailed = errors.New("some conversions failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups the inputs shared by every file of a batch.
type conversionParams struct {
	title  string
	author string
	format md2docx.Format // FormatAuto picks per file extension
	page   *md2docx.PageSettings
	html   bool
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	log := logger.NewWithLevel(env.Stderr, logger.LevelFor(flags.common.quiet, flags.common.verbose))
	warnUnknownEnvVars(env.Environ(), log)
	envCfg := loadEnvConfig(env.Getenv)

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName, log)
	if err != nil {
		return err
	}

	// Precedence: flags > config file > env > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := md2docx.ParseFormat(cfg.Convert.Format)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files found in %s", ErrNoInput, strings.Join(supportedExtensions, ", "), inputPath)
	}

	conv, err := buildConverter(cfg, env)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg.Theme.Page, conv.Theme())
	if err != nil {
		return err
	}

	params := &conversionParams{
		title:  cfg.Document.Title,
		author: cfg.Document.Author,
		format: format,
		page:   page,
		html:   cfg.Convert.HTML,
	}

	workers := md2docx.ResolvePoolSize(cfg.Convert.Workers, len(files))
	log.PoolSized(workers, len(files))

	start := time.Now()
	results := convertBatch(ctx, conv, workers, files, params)
	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	for _, r := range results {
		if r.Err == nil {
			log.FileConverted(r.InputPath, r.OutputPath, r.Size, r.Duration)
		}
	}
	log.BatchCompleted(summary.Succeeded, summary.Failed, time.Since(start))

	if err := ctx.Err(); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrConversionFailed, summary.Failed, len(results))
	}
	return nil
}

// loadConfig loads the named config, or returns defaults for an empty name.
// A name lookup failure keeps the name so the hint can list search paths.
func loadConfig(nameOrPath string, log *logger.Logger) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		err = fmt.Errorf("loading config: %w", err)
		if !fileutil.IsFilePath(nameOrPath) {
			err = &pathError{path: nameOrPath, err: err}
		}
		return nil, err
	}
	log.ConfigLoaded(nameOrPath)
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Convert.Workers = flags.workers
	}
	if flags.format != "" {
		cfg.Convert.Format = flags.format
	}
	if flags.html {
		cfg.Convert.HTML = true
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.theme.name != "" {
		cfg.Theme.Name = flags.theme.name
	}
	if flags.theme.assetPath != "" {
		cfg.Assets.BasePath = flags.theme.assetPath
	}
	if flags.theme.highlight != "" {
		cfg.Theme.Highlight = flags.theme.highlight
	}
	if flags.theme.spacingScale != 0 {
		cfg.Theme.SpacingScale = flags.theme.spacingScale
	}
	if flags.page.size != "" {
		cfg.Theme.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Theme.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Theme.Page.Margin = flags.page.margin
	}
}

// resolveInputPath picks the positional argument, falling back to
// input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir == "" {
		return "", ErrNoInput
	}
	if !fileutil.DirExists(cfg.Input.DefaultDir) {
		return "", fmt.Errorf("%w: input.defaultDir %s is not a directory", ErrNoInput, cfg.Input.DefaultDir)
	}
	return cfg.Input.DefaultDir, nil
}

// resolveOutputDir picks --output, falling back to output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildConverter creates the converter for a batch. Highlight and spacing
// tweaks are applied on top of the resolved theme.
func buildConverter(cfg *config.Config, env *Environment) (*md2docx.Converter, error) {
	opts := []md2docx.Option{md2docx.WithClock(env.Now)}
	if cfg.Theme.Name != "" {
		opts = append(opts, md2docx.WithThemeName(cfg.Theme.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2docx.WithAssetPath(cfg.Assets.BasePath))
	}

	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Theme.Highlight == "" && cfg.Theme.SpacingScale == 0 {
		return conv, nil
	}

	theme := conv.Theme()
	if cfg.Theme.Highlight != "" {
		theme.Highlight = cfg.Theme.Highlight
	}
	if cfg.Theme.SpacingScale != 0 {
		theme.Spacing.Scale = cfg.Theme.SpacingScale
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return md2docx.NewConverter(append(opts, md2docx.WithTheme(theme))...)
}

// buildPageSettings overlays the configured page fields on the theme's
// page. Returns nil when nothing is configured.
func buildPageSettings(pc config.PageConfig, theme *md2docx.Theme) (*md2docx.PageSettings, error) {
	if pc.IsZero() {
		return nil, nil
	}

	page := theme.Page
	if pc.Size != "" {
		page.Size = strings.ToLower(pc.Size)
	}
	if pc.Orientation != "" {
		page.Orientation = strings.ToLower(pc.Orientation)
	}
	if pc.Margin != 0 {
		page.Margin = pc.Margin
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return &page, nil
}
