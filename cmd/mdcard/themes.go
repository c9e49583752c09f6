package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/hints"
	"github.com/jaydendev/mdcard/internal/yamlutil"
)

// runThemes lists themes, or prints one theme definition with --show.
func runThemes(args []string, env *Environment) error {
	flags, err := parseThemesFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	loader, err := mdcard.NewAssetLoader(flags.assetPath)
	if err != nil {
		return err
	}

	names, err := loader.ListThemes()
	if err != nil {
		return fmt.Errorf("listing themes: %w", err)
	}

	if flags.show != "" {
		return showTheme(loader, flags.show, names, env)
	}

	for _, name := range names {
		theme, err := loader.LoadTheme(name)
		if err != nil {
			fmt.Fprintf(env.Stderr, "warning: skipping theme %s: %v\n", name, err)
			continue
		}
		marker := " "
		if name == mdcard.DefaultTheme {
			marker = "*"
		}
		mode := "light"
		if theme.Dark {
			mode = "dark"
		}
		fmt.Fprintf(env.Stdout, "%s %-12s %s (%s)\n", marker, name, theme.Name, mode)
	}
	return nil
}

// showTheme prints a theme as YAML, in the format accepted under themes/.
func showTheme(loader mdcard.AssetLoader, name string, available []string, env *Environment) error {
	theme, err := loader.LoadTheme(name)
	if err != nil {
		if errors.Is(err, mdcard.ErrThemeNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForThemeNotFound(available))
		}
		return err
	}

	data, err := yamlutil.Marshal(theme)
	if err != nil {
		return fmt.Errorf("encoding theme: %w", err)
	}
	fmt.Fprintf(env.Stdout, "# %s.yaml\n%s", name, data)
	return nil
}
