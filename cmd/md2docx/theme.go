package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
)

// runThemeCmd lists the built-in themes or prints one as YAML.
func runThemeCmd(args []string, env *Environment) error {
	var assetPath string
	fs := flag.NewFlagSet("theme", flag.ContinueOnError)
	fs.StringVar(&assetPath, "asset-path", "", "directory with a themes/ override folder")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printThemeUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return wrapFlagError(err)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printThemeUsage(env.Stderr)
		return fmt.Errorf("%w: theme needs a subcommand", ErrInvalidFlags)
	}

	switch rest[0] {
	case "list":
		printThemeList(env.Stdout)
		return nil
	case "show":
		name := md2docx.DefaultThemeName
		if len(rest) > 1 {
			name = rest[1]
		}
		return showTheme(env.Stdout, name, assetPath)
	default:
		return fmt.Errorf("%w: theme %s", ErrUnknownCommand, rest[0])
	}
}

// printThemeList prints the built-in theme names, marking the default.
func printThemeList(w io.Writer) {
	st := newStyles(w)
	for _, name := range md2docx.ThemeNames() {
		if name == md2docx.DefaultThemeName {
			fmt.Fprintf(w, "%s %s\n", st.title.Render(name), st.dim.Render("(default)"))
			continue
		}
		fmt.Fprintln(w, name)
	}
}

// showTheme resolves a theme the way convert does and prints it as YAML.
func showTheme(w io.Writer, name, assetPath string) error {
	opts := []md2docx.Option{md2docx.WithThemeName(name)}
	if assetPath != "" {
		opts = append(opts, md2docx.WithAssetPath(assetPath))
	}
	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		return err
	}

	data, err := md2docx.MarshalTheme(conv.Theme())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
