package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/bankscan/internal/cli"
	"github.com/jmhart/bankscan/internal/importer"
	"github.com/jmhart/bankscan/internal/model"
	"github.com/jmhart/bankscan/internal/parser"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from statement files",
		Long: `Import transactions from bank statement files (PDF or extracted text).

The statement text is scanned for the account activity section; each dated
entry is reconstructed into a transaction and stored with duplicate
detection, so re-importing the same statement is safe.

Examples:
  # Import a single statement
  bankscan import ~/Downloads/rbc_june.pdf

  # Import everything from a directory
  bankscan import ~/Downloads/statements/*.pdf

  # Statements without an embedded year need one passed explicitly
  bankscan import --year 2023 ~/Downloads/rbc_june_2023.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview the parse without saving")
	cmd.Flags().BoolP("verbose", "v", false, "Show every parsed transaction")
	cmd.Flags().Int("year", 0, "Statement year for dates without one (default: current year)")
	cmd.Flags().String("strategy", parser.StrategyDate, "Segmentation strategy (date, amount)")

	_ = viper.BindPFlag("import.year", cmd.Flags().Lookup("year"))
	_ = viper.BindPFlag("import.strategy", cmd.Flags().Lookup("strategy"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	opts := parser.Options{
		StatementYear: viper.GetInt("import.year"),
		Strategy:      viper.GetString("import.strategy"),
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imp := importer.New(store, opts)

	var bar *progressbar.ProgressBar
	if len(files) > 1 && !verbose {
		bar = progressbar.Default(int64(len(files)), "importing")
	}

	totalSaved, totalDuplicates, failed := 0, 0, 0
	for _, path := range files {
		saved, duplicates, ok := importOne(ctx, imp, path, dryRun, verbose)
		if ok {
			totalSaved += saved
			totalDuplicates += duplicates
		} else {
			failed++
		}
		// The bar advances only once the file has been processed.
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if dryRun {
		fmt.Println(cli.SubtleStyle.Render("Dry run complete - nothing saved"))
		return nil
	}

	if len(files) > 1 {
		fmt.Printf("\nTotal: %s\n", cli.FormatImportSummary(totalSaved, totalDuplicates, 0))
	}
	if failed == len(files) {
		return fmt.Errorf("no statements could be imported")
	}
	return nil
}

// importOne processes a single statement file, printing its outcome, and
// reports the saved and duplicate counts for successful imports.
func importOne(ctx context.Context, imp *importer.Importer, path string, dryRun, verbose bool) (saved, duplicates int, ok bool) {
	name := filepath.Base(path)

	if dryRun {
		stmt, err := imp.Preview(path)
		if err != nil {
			fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("%s: %v", name, err)))
			return 0, 0, false
		}
		printPreview(name, stmt, verbose)
		return 0, 0, true
	}

	result, err := imp.ImportFile(ctx, path)
	switch {
	case importer.IsNoTransactions(err):
		fmt.Println(cli.WarningStyle.Render(
			fmt.Sprintf("%s: no transactions found, enter them manually", name)))
		return 0, 0, false
	case err != nil:
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("%s: %v", name, err)))
		return 0, 0, false
	}

	if verbose {
		printPreview(name, result.Statement, true)
	}
	fmt.Printf("%s: %s\n", name,
		cli.FormatImportSummary(result.Saved, result.Duplicates, len(result.Statement.Skips)))
	return result.Saved, result.Duplicates, true
}

func printPreview(name string, stmt *model.ParsedStatement, verbose bool) {
	fmt.Println(cli.TitleStyle.Render(name))
	fmt.Printf("  Bank: %s", stmt.Metadata.BankName)
	if stmt.Metadata.AccountTail != "" {
		fmt.Printf("  Account: ...%s", stmt.Metadata.AccountTail)
	}
	if stmt.Metadata.StatementPeriod != "" {
		fmt.Printf("  Period: %s", stmt.Metadata.StatementPeriod)
	}
	fmt.Printf("  Transactions: %d\n", len(stmt.Transactions))

	if verbose {
		for _, txn := range stmt.Transactions {
			fmt.Println("  " + cli.FormatTransaction(txn))
		}
	}
	for _, skip := range stmt.Skips {
		fmt.Println("  " + cli.WarningStyle.Render(fmt.Sprintf("skipped: %s (%s)", skip.Snippet, skip.Reason)))
	}
}
