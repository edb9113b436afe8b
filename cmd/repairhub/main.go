package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/minerepair/repairhub/internal/interfaces/cli/migrate"
	"github.com/minerepair/repairhub/internal/interfaces/cli/server"
	"github.com/minerepair/repairhub/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repairhub",
		Short: "RepairHub - mining equipment repair marketplace backend",
		Long:  `RepairHub runs the repair request workflow, contractor verification and notification dispatch.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
