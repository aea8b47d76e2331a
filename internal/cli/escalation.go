package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/wire"
)

// EscalationCmd returns the escalation command
func EscalationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escalation",
		Short: "Manage escalated questions",
		Long:  "List, inspect, and answer questions that were escalated to a supervisor.",
	}

	cmd.AddCommand(escalationListCmd())
	cmd.AddCommand(escalationShowCmd())
	cmd.AddCommand(escalationResolveCmd())

	return cmd
}

func escalationListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List escalations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			status, _ := cmd.Flags().GetString("status")
			sessionID, _ := cmd.Flags().GetString("session")

			escalations, err := wire.EscalationService().List(ctx, primary.EscalationFilters{
				Status:    status,
				SessionID: sessionID,
			})
			if err != nil {
				return fmt.Errorf("failed to list escalations: %w", err)
			}

			if len(escalations) == 0 {
				fmt.Println("No escalations found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tQUESTION\tSTATUS\tSESSION\tCREATED")
			fmt.Fprintln(w, "--\t--------\t------\t-------\t-------")
			for _, item := range escalations {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					item.ID,
					truncate(item.Question, 48),
					colorStatus(item.Status),
					item.SessionID,
					item.CreatedAt,
				)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status (pending, resolved, delivered)")
	cmd.Flags().String("session", "", "Filter by session ID")

	return cmd
}

func escalationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [escalation-id]",
		Short: "Show escalation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			item, err := wire.EscalationService().GetByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("escalation not found: %w", err)
			}

			fmt.Printf("Escalation: %s\n", item.ID)
			fmt.Printf("Question: %s\n", item.Question)
			fmt.Printf("Status: %s\n", colorStatus(item.Status))
			fmt.Printf("Session: %s\n", item.SessionID)
			if item.PhoneNumber != "" {
				fmt.Printf("Phone: %s\n", item.PhoneNumber)
			}
			if item.SupervisorAnswer != "" {
				fmt.Printf("Answer: %s\n", item.SupervisorAnswer)
			}
			fmt.Printf("Created: %s\n", item.CreatedAt)
			if item.ResolvedAt != "" {
				fmt.Printf("Resolved: %s\n", item.ResolvedAt)
			}

			return nil
		},
	}
}

func escalationResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [escalation-id]",
		Short: "Answer an escalated question",
		Long: `Record the supervisor's answer for a pending escalation.

The answer is appended to the knowledge base so the same question answers
itself next time, and it is delivered to the caller: spoken into their call
if they are still on the line, texted to them otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, _ := cmd.Flags().GetString("answer")
			if answer == "" {
				return fmt.Errorf("--answer is required")
			}

			ctx := NewContext()
			item, err := wire.EscalationService().Resolve(ctx, args[0], answer)
			if err != nil {
				return fmt.Errorf("failed to resolve escalation: %w", err)
			}

			fmt.Printf("%s Escalation %s resolved.\n", color.GreenString("✓"), item.ID)
			return nil
		},
	}

	cmd.Flags().String("answer", "", "The supervisor's answer (required)")

	return cmd
}

func colorStatus(status string) string {
	switch escalation.Status(status) {
	case escalation.StatusPending:
		return color.YellowString(status)
	case escalation.StatusResolved:
		return color.CyanString(status)
	case escalation.StatusDelivered:
		return color.GreenString(status)
	}
	return status
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
