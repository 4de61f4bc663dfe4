package main

import (
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinicbook-server",
		Short:         "Clinic appointment booking API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		logCommandError(bootstrapLogger(), err)
		os.Exit(1)
	}
}
