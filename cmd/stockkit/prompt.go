package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// askString prompts for one line; an empty answer yields def.
func askString(title, def string) (string, error) {
	var v string
	in := huh.NewInput().Title(title).Value(&v)
	if def != "" {
		in = in.Placeholder(def)
	}
	if err := in.Run(); err != nil {
		return "", err
	}
	if v = strings.TrimSpace(v); v == "" {
		return def, nil
	}
	return v, nil
}

// askRequired prompts until a non-empty answer is given.
func askRequired(title, placeholder string) (string, error) {
	var v string
	err := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&v).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		}).
		Run()
	return strings.TrimSpace(v), err
}

// confirm asks a yes/no question. assumeYes skips the prompt; a
// non-interactive stdin answers no.
func confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !interactive() {
		return false, nil
	}
	var ok bool
	err := huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

const (
	menuFetch     = "fetch"
	menuImport    = "import"
	menuReconcile = "reconcile"
)

// runMenu is the interactive entry point when no subcommand is given.
func runMenu(ctx context.Context, a *app) error {
	if !interactive() {
		return errors.New("no subcommand given and stdin is not a terminal; see --help")
	}
	var choice string
	err := huh.NewSelect[string]().
		Title("Choose an operation").
		Options(
			huh.NewOption("Fetch market data and analyse", menuFetch),
			huh.NewOption("Import a local CSV and analyse", menuImport),
			huh.NewOption("Clean reinstall OpenBB", menuReconcile),
		).
		Value(&choice).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	switch choice {
	case menuFetch:
		symbol, err := askRequired("Symbol", "AAPL")
		if err != nil {
			return err
		}
		start, err := askString("Start date", defaultStart)
		if err != nil {
			return err
		}
		end, err := askString("End date", defaultEnd)
		if err != nil {
			return err
		}
		return runFetch(ctx, a, fetchOptions{symbol: symbol, start: start, end: end, dir: "."})
	case menuImport:
		path, err := askRequired("CSV file path", "data.csv")
		if err != nil {
			return err
		}
		symbol, err := askString("Symbol for the chart title", "stock")
		if err != nil {
			return err
		}
		return runImport(a, path, symbol, ".", false)
	case menuReconcile:
		return runReconcile(ctx, a, false, false)
	}
	return fmt.Errorf("unknown choice %q", choice)
}
