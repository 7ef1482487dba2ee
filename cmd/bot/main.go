package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "bot",
		Short:        "Index options signal bot: generates trades, tracks them, posts to Telegram",
		SilenceUsage: true,
	}

	var configFile string
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file name inside configs/ (overrides CONFIG_FILE)")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if configFile != "" {
			_ = os.Setenv("CONFIG_FILE", configFile)
		}
	}

	root.AddCommand(runCmd(), scanCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
