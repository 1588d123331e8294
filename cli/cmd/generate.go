package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colalang/cola/cola"
	"github.com/colalang/cola/cola/schema"
)

var (
	genMode         string
	genCrateName    string
	genOutput       string
	genDescribeJSON bool

	generateCmd = &cobra.Command{
		Use:   "generate <input>",
		Short: "Parse a Cola source file and generate the corresponding Go library",
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

			crateName := genCrateName
			if crateName == "" {
				crateName = deriveCrateName(input)
			}
			pkgName := strings.ReplaceAll(crateName, "-", "_")

			art, err := cola.Generate(input, src, cola.Options{
				BareCola:  bare,
				Package:   pkgName,
				WithTests: true,
			})
			if err != nil {
				return err
			}
			logger.WithField("run_id", art.RunID).Infof("generated %d type(s) from %s", len(art.Schema.Types), input)

			if genDescribeJSON {
				return describeJSON(art.Schema)
			}

			switch genMode {
			case "", "crate":
				return writeCrate(crateName, pkgName, art)
			case "module":
				return writeModule(crateName, art)
			default:
				return fmt.Errorf("unknown --mode %q, want crate or module", genMode)
			}
		},
	}
)

func init() {
	generateCmd.Flags().StringVar(&genMode, "mode", "crate", "output layout: crate or module")
	generateCmd.Flags().StringVar(&genCrateName, "crate-name", "", "package/crate name, default derived from the input file stem")
	generateCmd.Flags().StringVar(&genOutput, "output", "generated", "output directory")
	generateCmd.Flags().BoolVar(&genDescribeJSON, "describe-json", false, "print the derived schema as JSON Schema instead of generating code")
	rootCmd.AddCommand(generateCmd)
}

// deriveCrateName turns an input file stem into a package name per spec.md
// §6: lowercase, underscores to dashes, "-config" suffix.
func deriveCrateName(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	stem = strings.ToLower(stem)
	stem = strings.ReplaceAll(stem, "_", "-")
	return stem + "-config"
}

func writeCrate(crateName, pkgName string, art cola.Artifacts) error {
	dir := filepath.Join(genOutput, crateName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cola.IoError{Path: dir, Err: err}
	}

	// The generated FromEntity/FromChildren constructors deserialize
	// against cola's own model.Model, and the smoke test exercises that
	// same parse -> model chain plus testify, so the crate needs both as
	// real runtime dependencies, not just the toolchain that produced it.
	manifest := fmt.Sprintf("module %s\n\ngo 1.24\n\nrequire (\n\tgithub.com/colalang/cola v0.0.0\n\tgithub.com/stretchr/testify v1.11.1\n)\n", pkgName)
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(manifest), 0o644); err != nil {
		return cola.IoError{Path: dir, Err: err}
	}
	if err := os.WriteFile(filepath.Join(dir, "lib.go"), art.Source, 0o644); err != nil {
		return cola.IoError{Path: dir, Err: err}
	}
	if len(art.TestSource) > 0 {
		if err := os.WriteFile(filepath.Join(dir, "lib_test.go"), art.TestSource, 0o644); err != nil {
			return cola.IoError{Path: dir, Err: err}
		}
	}
	fmt.Println("wrote", dir)
	return nil
}

// writeModule writes a single source file at <output>/<module-name>, plus
// its _test.go sibling when tests were requested: Go's own toolchain
// requires the _test.go suffix for test discovery, so "inline unit tests"
// means living next to the module file rather than literally sharing it.
func writeModule(crateName string, art cola.Artifacts) error {
	if err := os.MkdirAll(genOutput, 0o755); err != nil {
		return cola.IoError{Path: genOutput, Err: err}
	}
	moduleName := strings.ReplaceAll(crateName, "-", "_")
	path := filepath.Join(genOutput, moduleName+".go")
	if err := os.WriteFile(path, art.Source, 0o644); err != nil {
		return cola.IoError{Path: path, Err: err}
	}
	if len(art.TestSource) > 0 {
		testPath := filepath.Join(genOutput, moduleName+"_test.go")
		if err := os.WriteFile(testPath, art.TestSource, 0o644); err != nil {
			return cola.IoError{Path: testPath, Err: err}
		}
	}
	fmt.Println("wrote", path)
	return nil
}

func describeJSON(set *schema.Set) error {
	doc, err := schema.ToJSONSchema(set, set.RootKey)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
