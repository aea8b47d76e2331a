package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/frontdesk/internal/cli"
	"github.com/example/frontdesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "frontdesk",
		Short:   "Frontdesk - AI receptionist with human escalation",
		Version: version.String(),
		Long: `Frontdesk answers caller questions from a learned knowledge base and
escalates anything it cannot answer to a human supervisor. Supervisor
answers flow back into live calls and into the knowledge base.`,
	}

	rootCmd.AddCommand(cli.TalkCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.EscalationCmd())
	rootCmd.AddCommand(cli.KbCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
