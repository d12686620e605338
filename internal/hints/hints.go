// Package hints builds the one-line suggestions the CLI appends to error
// messages. Every hint reads "\n  hint: <text>"; alternatives in one hint
// are separated by "; ".
package hints

import (
	"fmt"
	"path/filepath"
	"strings"
)

const prefix = "\n  hint: "

// ForConfigNotFound suggests --config, plus creating the config in the
// user config directory when that location was searched.
func ForConfigNotFound(searchedPaths []string) string {
	text := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "go-md2docx/") {
			text += " or create " + p
			break
		}
	}
	return join(text)
}

// ForOutputDirectory is shown when an output directory cannot be created.
func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForThemeNotFound lists the themes that can be used instead.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: "+strings.Join(available, ", "), "or pass a theme file path")
}

// ForInvalidPackage explains what a readable package is. Legacy binary
// .doc files get their own suggestion.
func ForInvalidPackage(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".doc") {
		return join("legacy .doc files are not supported; save the file as .docx first")
	}
	return join("the file must be a Word .docx package (a zip archive with word/document.xml)")
}

// ForUnsupportedExtension lists the extensions a command accepts.
func ForUnsupportedExtension(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return join("supported: " + strings.Join(supported, ", "))
}

// ForWorkerCount states the valid --workers range.
func ForWorkerCount(maxWorkers int) string {
	return join(fmt.Sprintf("use --workers between 1 and %d, or 0 for auto", maxWorkers))
}

// join renders alternatives as a single hint line. Empty parts are
// skipped; no parts yields "".
func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}
