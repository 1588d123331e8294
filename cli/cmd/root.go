package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "cola",
		Short:        "cola",
		SilenceUsage: true,
		Long:         `CLI tool for the Cola configuration language: parses Cola source and generates a typed Go library exposing it. See README.md.`,
	}

	directory string
	verbose   bool

	logger = logrus.StandardLogger()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "directory holding cola.yaml, and the default directory for scan and sites")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	})
}
