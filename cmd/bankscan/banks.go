package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmhart/bankscan/internal/cli"
	"github.com/jmhart/bankscan/internal/model"
)

func banksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List institutions the statement detector recognizes",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.TitleStyle.Render("Recognized institutions"))
			for _, bank := range []string{model.BankRBC, model.BankTD, model.BankScotiabank} {
				fmt.Printf("  - %s\n", bank)
			}
			fmt.Println(cli.SubtleStyle.Render(
				"Statements from other institutions import as " + model.BankUnknown + "."))
		},
	}
}
