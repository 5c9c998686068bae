package main

import (
	"github.com/spf13/cobra"

	"StockKit/internal/importer"
)

func newImportCmd(a *app) *cobra.Command {
	var symbol, dir string
	var noChart bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import daily prices from a local CSV and analyse them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(a, args[0], symbol, dir, noChart)
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol for the chart title (default: file name)")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory for the price chart")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "skip chart rendering")
	return cmd
}

func runImport(a *app, path, symbol, dir string, noChart bool) error {
	series, err := importer.New().Import(path, symbol)
	if err != nil {
		return err
	}
	return analyse(a, series, symbol, dir, noChart)
}
