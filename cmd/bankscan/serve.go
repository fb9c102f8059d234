package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmhart/bankscan/internal/importer"
	"github.com/jmhart/bankscan/internal/parser"
	"github.com/jmhart/bankscan/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statement preview/import HTTP API",
		Long: `Serve the statement pipeline over HTTP.

POST /api/statements/preview  parse an uploaded statement without saving
POST /api/statements/import   parse and store with duplicate detection
GET  /api/transactions        query stored transactions
GET  /api/transactions/stats  monthly totals`,
		RunE: runServe,
	}

	cmd.Flags().String("listen", ":8080", "Listen address")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imp := importer.New(store, parser.Options{
		StatementYear: viper.GetInt("import.year"),
		Strategy:      viper.GetString("import.strategy"),
	})
	srv := server.New(imp, store)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	addr := viper.GetString("server.listen")
	slog.Info("serving statement API", "addr", addr)
	return srv.Listen(addr)
}
