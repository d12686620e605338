// Package md2docx converts Markdown and HTML documents to Word (.docx)
// packages, and reads .docx packages back as Markdown.
//
// # Quick Start
//
// Create a converter and convert text:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Source: "# Hello\n\nWorld",
//	    Title:  "Greeting",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
// The result holds the package bytes (result.DOCX) and the normalized
// Markdown the package was built from (result.Markdown). Set Input.HTML to
// also get a standalone HTML preview.
//
// For one-off calls the package-level functions use a shared converter
// with the default theme:
//
//	pkg, err := md2docx.ToDocumentPackage(source, "Title")
//	md := md2docx.ToNormalizedMarkdown("<h1>Title</h1><p>text</p>")
//	markup, err := md2docx.ExtractPlainMarkup(pkg)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Preprocessing (byte order mark, line endings)
//  2. Format detection: text containing an HTML start tag is HTML
//  3. HTML normalization to the supported Markdown dialect
//  4. Block parsing and inline span parsing
//  5. Document model construction (sections, list groups, table geometry)
//  6. Package rendering (OOXML parts zipped in memory)
//
// Parsing stages never fail: malformed markup degrades to literal text.
// Only rendering can fail, with ErrRenderFailure.
//
// # Supported Markdown
//
// Headings (# to ######), paragraphs, bullet and ordered lists nested up to
// three levels, fenced code blocks with an optional language, pipe tables,
// block quotes, horizontal rules, and the inline styles **bold**, *italic*,
// ***both***, ~~strikethrough~~, `code`, [links](url) and ![images](src).
// Images are embedded when their source is a PNG or JPEG data URI.
//
// # Themes
//
// Fonts, sizes, colors, spacing and page geometry come from a Theme.
// Built-in presets are "default", "compact" and "classic":
//
//	conv, err := md2docx.NewConverter(md2docx.WithThemeName("compact"))
//
// Custom presets live in an asset directory and override built-ins by name:
//
//	assets/
//	└── themes/
//	    └── house.yaml
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithAssetPath("/path/to/assets"),
//	    md2docx.WithThemeName("house"),
//	)
//
// Theme files only need the values they change; everything else keeps the
// default theme's value.
//
// # Reading Packages
//
// PackageToMarkdown extracts a package's body as HTML and normalizes it:
//
//	md, err := conv.PackageToMarkdown(docxBytes)
//
// The inverse direction is lossy: ordered lists become bullet lists and
// code block languages are dropped.
//
// # Concurrency
//
// A Converter is safe for concurrent use. Batch tools size their worker
// pools with ResolvePoolSize.
package md2docx
