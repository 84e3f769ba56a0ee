package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// a missing .env file is fine, the environment may carry everything
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "eantienda-cli",
		Short:         "Assign EAN-13 codes, print label sheets and issue unique ticket codes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newEANCmd(),
		newLabelsCmd(),
		newCodesCmd(),
	)
	return rootCmd
}
