package main

import (
	"os"

	"github.com/spf13/cobra"

	"shelfwatch/internal/interfaces/cli/admin"
	"shelfwatch/internal/interfaces/cli/migrate"
	"shelfwatch/internal/interfaces/cli/notify"
	"shelfwatch/internal/interfaces/cli/server"
	"shelfwatch/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "shelfwatch",
		Short:        "Shelfwatch - inventory expiry tracking",
		Long:         `Shelfwatch serves the inventory expiry tracker and runs its schema migrations, notification passes and role administration.`,
		Version:      version.String(),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		notify.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
