package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Load and validate cola.yaml, listing its generation targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			for name, t := range cfg.Targets {
				fmt.Printf("%s: %s -> %s (mode=%s, package=%s)\n", name, t.Input, t.Output, t.Mode, t.Package)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)
}
