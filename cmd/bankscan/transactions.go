package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmhart/bankscan/internal/cli"
	"github.com/jmhart/bankscan/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Inspect stored transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsStatsCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		RunE:  runTransactionsList,
	}

	cmd.Flags().String("month", "", "Filter by month (YYYY-MM)")
	cmd.Flags().String("bank", "", "Filter by bank name")
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 0, "Maximum rows to show")

	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	filter := service.TransactionFilter{}
	filter.Month, _ = cmd.Flags().GetString("month")
	filter.Bank, _ = cmd.Flags().GetString("bank")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		filter.StartDate = &t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		filter.EndDate = &t
	}

	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions found"))
		return nil
	}

	for _, txn := range transactions {
		fmt.Println(cli.FormatTransaction(txn))
	}
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d transactions", len(transactions))))
	return nil
}

func transactionsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show monthly totals",
		RunE:  runTransactionsStats,
	}
}

func runTransactionsStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.MonthlyStats(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions stored yet"))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Monthly totals"))
	for _, month := range stats {
		fmt.Printf("%s  %4d transactions  in %12.2f  out %12.2f  net %s\n",
			month.Month, month.Count, month.Inflow, month.Outflow,
			cli.FormatAmount(month.Inflow-month.Outflow))
	}
	return nil
}
