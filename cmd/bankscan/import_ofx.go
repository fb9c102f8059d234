package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmhart/bankscan/internal/cli"
	"github.com/jmhart/bankscan/internal/importer"
	"github.com/jmhart/bankscan/internal/parser"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX files exported from your bank.

OFX downloads carry structured dates and signed amounts, so no text
heuristics are involved; the records go straight through the same
duplicate-detection gate as PDF imports.

Examples:
  bankscan import-ofx ~/Downloads/rbc_june.qfx
  bankscan import-ofx ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show every parsed transaction")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imp := importer.New(store, parser.Options{})

	failed := 0
	for _, path := range files {
		result, importErr := imp.ImportFile(ctx, path)
		switch {
		case importer.IsNoTransactions(importErr):
			fmt.Println(cli.WarningStyle.Render(
				fmt.Sprintf("%s: file contains no transactions", filepath.Base(path))))
			failed++
			continue
		case importErr != nil:
			fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("%s: %v", filepath.Base(path), importErr)))
			failed++
			continue
		}

		if verbose {
			printPreview(filepath.Base(path), result.Statement, true)
		}
		fmt.Printf("%s: %s\n", filepath.Base(path),
			cli.FormatImportSummary(result.Saved, result.Duplicates, 0))
	}

	if failed == len(files) {
		return fmt.Errorf("no OFX files could be imported")
	}
	return nil
}
