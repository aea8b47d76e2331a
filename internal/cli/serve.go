package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/frontdesk/internal/config"
	"github.com/example/frontdesk/internal/server"
	"github.com/example/frontdesk/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the supervisor dashboard API",
		Long: `Run the HTTP API the supervisor dashboard talks to: the escalation
queue, the answer endpoint, the knowledge base view, and history with
summary statistics. Metrics are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.ServerAddr = addr
			}

			srv := server.New(cfg)
			srv.RegisterRoutes(wire.EscalationService(), wire.KnowledgeService())

			fmt.Printf("Supervisor dashboard listening on %s\n", cfg.ServerAddr)
			return srv.Start()
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides FRONTDESK_ADDR)")

	return cmd
}
