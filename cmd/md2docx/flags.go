package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title  string
	author string
}

// themeFlags holds presentation flags.
type themeFlags struct {
	name         string
	assetPath    string
	highlight    string
	spacingScale float64
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	format   string
	html     bool
	document documentFlags
	theme    themeFlags
	page     pageFlags
}

// markdownFlags holds flags for the markdown command.
type markdownFlags struct {
	output string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title, rendered as the first heading")
	fs.StringVar(&f.author, "author", "", "document author property")
}

// addThemeFlags adds theme flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.name, "theme", "", "theme name or YAML file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with a themes/ override folder")
	fs.StringVar(&f.highlight, "highlight", "", "code highlight style (\"none\" disables)")
	fs.Float64Var(&f.spacingScale, "spacing-scale", 0, "multiply all block spacing (0 = theme)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// buildConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by the parser and the completion generator.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.format, "format", "f", "", "input format: auto, markdown, html")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addThemeFlags(fs, &f.theme)
	addPageFlags(fs, &f.page)

	return fs
}

// buildMarkdownFlagSet registers the markdown command flags.
func buildMarkdownFlagSet(f *markdownFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("markdown", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}

// parseMarkdownFlags parses markdown command flags and returns positional args.
func parseMarkdownFlags(args []string, stderr io.Writer) (*markdownFlags, []string, error) {
	f := &markdownFlags{}
	fs := buildMarkdownFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printMarkdownUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}
	return f, fs.Args(), nil
}
