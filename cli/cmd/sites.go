package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/colalang/cola/goparser"
)

var (
	sitesCmd = &cobra.Command{
		Use:   "sites [dir]",
		Short: "Report cola.Generate/cola.MustGenerate call sites found in a Go module",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}

			dir := directory
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			pkgs, err := goparser.GetPackages(dir)
			if err != nil {
				return err
			}

			sites := goparser.NewWalker().FindGenerateCallSites(pkgs)
			for _, s := range sites {
				must := ""
				if s.Must {
					must = " (must)"
				}
				fn := s.Func
				if fn == "" {
					fn = "<package scope>"
				}
				fmt.Printf("%s: %s in %s%s\n", s.Position, s.Package, fn, must)
			}
			if len(sites) == 0 {
				fmt.Println("no cola.Generate/cola.MustGenerate call sites found")
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(sitesCmd)
}
