package main

// Notes:
// - runConvert: end-to-end runs with the real converter on temp
//   directories. Config files are passed by path so tests never depend
//   on the working directory or the user config directory.
// - mergeFlags/applyEnvConfig/buildPageSettings: precedence rules.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunConvertCmd - End to end
// ---------------------------------------------------------------------------

func TestRunConvertCmd_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	writeFile(t, src, "# Intro\n\nSome **bold** text.\n")

	env := newTestEnv(nil)
	err := runConvertCmd(context.Background(), []string{src, "--title", "Report", "--author", "Ada"}, env.Environment)
	if err != nil {
		t.Fatalf("runConvertCmd() error: %v\nstderr: %s", err, env.stderr.String())
	}

	out := filepath.Join(dir, "notes.docx")
	core := readPart(t, out, "docProps/core.xml")
	if !strings.Contains(core, "<dc:creator>Ada</dc:creator>") {
		t.Errorf("core.xml should carry the author, got %s", core)
	}
	if !strings.Contains(core, "<dc:title>Report</dc:title>") {
		t.Errorf("core.xml should carry the title, got %s", core)
	}
	if body := readPart(t, out, "word/document.xml"); !strings.Contains(body, "Intro") {
		t.Error("document.xml should contain the heading text")
	}
	if got := env.stdout.String(); got != "Created "+out+"\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunConvertCmd_Directory(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "# A\n")
	writeFile(t, filepath.Join(src, "guide", "b.html"), "<h1>B</h1><p>from <b>html</b></p>")
	out := filepath.Join(t.TempDir(), "out")

	env := newTestEnv(nil)
	err := runConvertCmd(context.Background(), []string{src, "-o", out, "-w", "2"}, env.Environment)
	if err != nil {
		t.Fatalf("runConvertCmd() error: %v\nstderr: %s", err, env.stderr.String())
	}

	for _, p := range []string{filepath.Join(out, "a.docx"), filepath.Join(out, "guide", "b.docx")} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
	if body := readPart(t, filepath.Join(out, "guide", "b.docx"), "word/document.xml"); !strings.Contains(body, "<w:b/>") {
		t.Error("HTML bold should become a bold run")
	}
	if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout should summarize the batch, got %q", env.stdout.String())
	}
}

func TestRunConvertCmd_HTMLPreview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "page.html")
	writeFile(t, src, "<h1>Intro</h1><p>Hello</p>")

	env := newTestEnv(nil)
	if err := runConvertCmd(context.Background(), []string{src, "--html", "-q"}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error: %v", err)
	}

	preview, err := os.ReadFile(filepath.Join(dir, "page.preview.html"))
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	if !strings.Contains(string(preview), "Intro") {
		t.Errorf("preview should render the heading, got %s", preview)
	}
	source, err := os.ReadFile(src)
	if err != nil || string(source) != "<h1>Intro</h1><p>Hello</p>" {
		t.Error("source must not be overwritten by its preview")
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", env.stdout.String())
	}
}

func TestRunConvertCmd_PageFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "wide.md")
	writeFile(t, src, "text\n")

	env := newTestEnv(nil)
	args := []string{src, "-p", "A4", "--orientation", "landscape", "--margin", "0.5"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error: %v", err)
	}

	body := readPart(t, filepath.Join(dir, "wide.docx"), "word/document.xml")
	if !strings.Contains(body, `<w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/>`) {
		t.Errorf("expected landscape A4 page size, got %s", body)
	}
	if !strings.Contains(body, `w:top="720"`) {
		t.Error("half inch margin should be 720 twips")
	}
}

func TestRunConvertCmd_ConfigAndEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in")
	writeFile(t, filepath.Join(src, "doc.md"), "# Doc\n")
	out := filepath.Join(dir, "out")

	cfgPath := filepath.Join(dir, "team.yaml")
	writeFile(t, cfgPath, "document:\n  author: Config Author\ntheme:\n  page:\n    size: legal\n")

	env := newTestEnv(map[string]string{
		"MD2DOCX_CONFIG":     cfgPath,
		"MD2DOCX_AUTHOR":     "Env Author",
		"MD2DOCX_INPUT_DIR":  src,
		"MD2DOCX_OUTPUT_DIR": out,
	})
	if err := runConvertCmd(context.Background(), []string{"-q"}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error: %v\nstderr: %s", err, env.stderr.String())
	}

	docx := filepath.Join(out, "doc.docx")
	if core := readPart(t, docx, "docProps/core.xml"); !strings.Contains(core, "Config Author") {
		t.Errorf("config file should win over env, got %s", core)
	}
	if body := readPart(t, docx, "word/document.xml"); !strings.Contains(body, `w:h="20160"`) {
		t.Error("legal page size from config expected")
	}
}

func TestRunConvertCmd_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	writeFile(t, src, "# Doc\n")
	cfgPath := filepath.Join(dir, "team.yaml")
	writeFile(t, cfgPath, "document:\n  author: Config Author\n")

	env := newTestEnv(nil)
	args := []string{src, "-c", cfgPath, "--author", "Flag Author", "-q"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error: %v", err)
	}

	if core := readPart(t, filepath.Join(dir, "doc.docx"), "docProps/core.xml"); !strings.Contains(core, "Flag Author") {
		t.Errorf("flag should win over config, got %s", core)
	}
}

func TestRunConvertCmd_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	writeFile(t, src, "# Doc\n")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "convert:\n  workers: 99\n")
	empty := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no input", args: []string{}, wantErr: ErrNoInput},
		{name: "missing file", args: []string{filepath.Join(dir, "missing.md")}, wantErr: os.ErrNotExist},
		{name: "empty directory", args: []string{empty}, wantErr: ErrNoInput},
		{name: "too many workers", args: []string{src, "-w", "9"}, wantErr: ErrInvalidWorkerCount},
		{name: "bad format", args: []string{src, "-f", "rtf"}, wantErr: config.ErrInvalidValue},
		{name: "bad page size", args: []string{src, "-p", "a5"}, wantErr: md2docx.ErrInvalidPageSize},
		{name: "bad margin", args: []string{src, "--margin", "9"}, wantErr: config.ErrInvalidValue},
		{name: "unknown theme", args: []string{src, "--theme", "neon"}, wantErr: md2docx.ErrThemeNotFound},
		{name: "invalid config", args: []string{src, "-c", bad}, wantErr: config.ErrInvalidValue},
		{name: "missing config", args: []string{src, "-c", filepath.Join(dir, "nope.yaml")}, wantErr: config.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			err := runConvertCmd(context.Background(), tt.args, env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunConvertCmd_PartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.md"), "# OK\n")
	writeFile(t, filepath.Join(dir, "blocked.md"), "# Blocked\n")
	out := filepath.Join(t.TempDir(), "out")
	// A directory where the output file should go makes the write fail.
	if err := os.MkdirAll(filepath.Join(out, "blocked.docx", "x"), 0o755); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(nil)
	err := runConvertCmd(context.Background(), []string{dir, "-o", out}, env.Environment)
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("error = %v, want ErrConversionFailed", err)
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error should count failures, got %q", err.Error())
	}
	if _, err := os.Stat(filepath.Join(out, "ok.docx")); err != nil {
		t.Errorf("successful file should still be written: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "FAILED") {
		t.Errorf("stderr should report the failure, got %q", env.stderr.String())
	}
}

func TestRunConvertCmd_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	writeFile(t, src, "# Doc\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := newTestEnv(nil)
	err := runConvertCmd(ctx, []string{src}, env.Environment)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.docx")); !errors.Is(err, os.ErrNotExist) {
		t.Error("cancelled run should not write output")
	}
}

func TestRunConvertCmd_WarnsUnknownEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	writeFile(t, src, "# Doc\n")

	env := newTestEnv(map[string]string{"MD2DOCX_AUTOR": "typo"})
	if err := runConvertCmd(context.Background(), []string{src}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "MD2DOCX_AUTOR") {
		t.Errorf("stderr should warn about the unknown variable, got %q", env.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Flag precedence
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Document.Author = "Config"
	cfg.Theme.Page.Size = "legal"
	cfg.Convert.Workers = 2

	flags := &convertFlags{
		workers:  4,
		html:     true,
		document: documentFlags{author: "Flag"},
		theme:    themeFlags{name: "classic", highlight: "none", spacingScale: 1.5},
		page:     pageFlags{orientation: "landscape"},
	}
	mergeFlags(flags, cfg)

	if cfg.Document.Author != "Flag" {
		t.Errorf("author = %q, want Flag", cfg.Document.Author)
	}
	if cfg.Convert.Workers != 4 || !cfg.Convert.HTML {
		t.Errorf("convert = %+v", cfg.Convert)
	}
	if cfg.Theme.Name != "classic" || cfg.Theme.Highlight != "none" || cfg.Theme.SpacingScale != 1.5 {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if cfg.Theme.Page.Size != "legal" {
		t.Errorf("unset flag should keep config page size, got %q", cfg.Theme.Page.Size)
	}
	if cfg.Theme.Page.Orientation != "landscape" {
		t.Errorf("orientation = %q, want landscape", cfg.Theme.Page.Orientation)
	}
	if cfg.Convert.Format != "auto" {
		t.Errorf("unset format flag should keep %q, got %q", "auto", cfg.Convert.Format)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPageSettings - Page overlay
// ---------------------------------------------------------------------------

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	theme := md2docx.DefaultTheme()

	page, err := buildPageSettings(PageConfig{}, theme)
	if err != nil || page != nil {
		t.Fatalf("zero config = %v, %v, want nil, nil", page, err)
	}

	page, err = buildPageSettings(PageConfig{Orientation: "Landscape"}, theme)
	if err != nil {
		t.Fatalf("buildPageSettings() error: %v", err)
	}
	want := md2docx.PageSettings{Size: theme.Page.Size, Orientation: "landscape", Margin: theme.Page.Margin}
	if *page != want {
		t.Errorf("page = %+v, want %+v", *page, want)
	}

	if _, err := buildPageSettings(PageConfig{Size: "a3"}, theme); !errors.Is(err, md2docx.ErrInvalidPageSize) {
		t.Errorf("error = %v, want ErrInvalidPageSize", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildConverter - Theme tweaks
// ---------------------------------------------------------------------------

func TestBuildConverter(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)

	cfg := config.DefaultConfig()
	cfg.Theme.Name = "compact"
	cfg.Theme.Highlight = "none"
	cfg.Theme.SpacingScale = 2
	conv, err := buildConverter(cfg, env.Environment)
	if err != nil {
		t.Fatalf("buildConverter() error: %v", err)
	}
	theme := conv.Theme()
	if theme.Name != "compact" {
		t.Errorf("theme name = %q, want compact", theme.Name)
	}
	if theme.Highlight != "none" || theme.Spacing.Scale != 2 {
		t.Errorf("tweaks not applied: highlight %q, scale %v", theme.Highlight, theme.Spacing.Scale)
	}

	cfg = config.DefaultConfig()
	cfg.Theme.Name = "missing"
	if _, err := buildConverter(cfg, env.Environment); !errors.Is(err, md2docx.ErrThemeNotFound) {
		t.Errorf("error = %v, want ErrThemeNotFound", err)
	}
}
