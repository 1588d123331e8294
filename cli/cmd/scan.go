package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colalang/cola/cola"
	"github.com/colalang/cola/colatest"
)

var (
	scanCmd = &cobra.Command{
		Use:   "scan [dir]",
		Short: "Walk a directory for .cola/.md files and report discovered entities, without writing output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}

			dir := directory
			if len(args) == 1 {
				dir = args[0]
			}

			found, failed, err := scanFS(os.DirFS(dir), verbose)
			if err != nil {
				return err
			}

			if found == 0 {
				fmt.Println("no .cola/.md files found under", dir)
			} else {
				fmt.Printf("scanned %d file(s), %d with errors\n", found, failed)
			}
			return nil
		},
	}
)

// scanFS is scanCmd's logic against an fs.FS rather than a bare directory
// path, so tests can exercise it against an in-memory filesystem.
func scanFS(fsys fs.FS, verbose bool) (found, failed int, err error) {
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".cola" && ext != ".md" {
			return nil
		}

		src, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		found++

		art, genErr := cola.Generate(path, src, cola.Options{BareCola: ext == ".cola"})
		if genErr != nil {
			failed++
			fmt.Printf("%s: %v\n", path, genErr)
			return nil
		}

		fmt.Printf("%s: %d type(s)\n", path, len(art.Schema.Types))
		if verbose {
			fmt.Println(colatest.DumpSchema(art.Schema))
		}
		return nil
	})
	return found, failed, err
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
