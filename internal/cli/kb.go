package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/frontdesk/internal/db"
	"github.com/example/frontdesk/internal/wire"
)

// KbCmd returns the kb command
func KbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Manage the knowledge base",
		Long:  "List and add question and answer pairs the receptionist answers from.",
	}

	cmd.AddCommand(kbListCmd())
	cmd.AddCommand(kbAddCmd())
	cmd.AddCommand(kbSeedCmd())

	return cmd
}

func kbListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List knowledge base entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			entries, err := wire.KnowledgeService().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list knowledge base: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Knowledge base is empty. Run 'frontdesk kb seed' to load starter entries.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tQUESTION\tANSWER")
			fmt.Fprintln(w, "--\t--------\t------")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, truncate(e.Question, 40), truncate(e.Answer, 60))
			}
			w.Flush()
			return nil
		},
	}
}

func kbAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a knowledge base entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			question, _ := cmd.Flags().GetString("question")
			answer, _ := cmd.Flags().GetString("answer")
			if question == "" || answer == "" {
				return fmt.Errorf("--question and --answer are required")
			}

			ctx := NewContext()
			entry, err := wire.KnowledgeService().Add(ctx, question, answer)
			if err != nil {
				return fmt.Errorf("failed to add entry: %w", err)
			}

			fmt.Printf("%s Entry %d added: %q\n", color.GreenString("✓"), entry.ID, entry.Question)
			return nil
		},
	}

	cmd.Flags().String("question", "", "The question (required)")
	cmd.Flags().String("answer", "", "The answer (required)")

	return cmd
}

func kbSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the starter knowledge base",
		Long:  "Load the starter salon entries into an empty knowledge base. A populated knowledge base is left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			n, err := db.SeedKnowledge(database)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Knowledge base already populated, nothing to do.")
				return nil
			}

			fmt.Printf("%s Seeded %d entries.\n", color.GreenString("✓"), n)
			return nil
		},
	}
}
