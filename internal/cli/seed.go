package cli

import "github.com/spf13/cobra"

// SeedCmd returns the top-level seed command, a shorthand for "kb seed".
func SeedCmd() *cobra.Command {
	cmd := kbSeedCmd()
	cmd.Use = "seed"
	return cmd
}
