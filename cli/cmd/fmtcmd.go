package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colalang/cola/cola/lexer"
	"github.com/colalang/cola/cola/model"
	"github.com/colalang/cola/cola/parse"
	"github.com/colalang/cola/cola/pretty"
)

var (
	fmtColor bool

	fmtCmd = &cobra.Command{
		Use:   "fmt <input>",
		Short: "Round-trip a Cola source file through the pretty printer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <input>")
			}
			input := args[0]

			src, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			bare := strings.EqualFold(filepath.Ext(input), ".cola")

			doc, err := parse.Parse(lexer.FileRef(input), string(src), bare)
			if err != nil {
				return err
			}
			m, errs := model.Build(doc)
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Printf("%s: %s\n", e.Pos, e.Message)
				}
				return fmt.Errorf("cola: %d model error(s)", len(errs))
			}

			out := pretty.Print(m)
			if fmtColor {
				highlighted, err := pretty.Highlight(out)
				if err != nil {
					return err
				}
				out = highlighted
			}
			fmt.Print(out)
			return nil
		},
	}
)

func init() {
	fmtCmd.Flags().BoolVar(&fmtColor, "color", false, "syntax-highlight the output for a terminal")
	rootCmd.AddCommand(fmtCmd)
}
