package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/frontdesk/internal/adapters/console"
	"github.com/example/frontdesk/internal/wire"
)

// TalkCmd returns the talk command
func TalkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talk",
		Short: "Start a console call with the receptionist",
		Long: `Start an interactive call session on the terminal, standing in for the
voice transport. Each line you type is one utterance; the receptionist
answers from the knowledge base or escalates to a supervisor. Answers
recorded while the call is live (frontdesk escalation resolve, or the
dashboard) are spoken back into the session. End the call with Ctrl-D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			phone, _ := cmd.Flags().GetString("phone")

			sessionID := uuid.NewString()
			transport := console.NewTransport(os.Stdin, os.Stdout)
			reception := wire.ReceptionService(transport)

			fmt.Printf("Session %s connected as %s. Type to talk, Ctrl-D to hang up.\n\n", sessionID, phone)

			if err := reception.RunSession(NewContext(), sessionID, phone); err != nil {
				return fmt.Errorf("session ended with error: %w", err)
			}
			fmt.Println("\nCall ended.")
			return nil
		},
	}

	cmd.Flags().String("phone", "+15550000000", "Caller phone number for this session")

	return cmd
}
