package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "picproxyctl",
		Short:         "picproxyctl administers the picproxy image cache",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String("config", "", "path to the picproxy config file")
	cmd.AddCommand(newCleanCommand())

	return cmd
}
