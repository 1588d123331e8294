package cmd

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/colalang/cola/cola"
)

var (
	watchDebounce time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch <input>",
		Short: "Regenerate the Go library every time the input Cola source changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <input>")
			}
			input := args[0]

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			if err := watcher.Add(filepath.Dir(input)); err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			regenerate := func() {
				if err := runGenerate(input); err != nil {
					logger.WithField("input", input).WithError(err).Error("generate failed")
					return
				}
				logger.WithField("input", input).Info("regenerated")
			}

			regenerate()

			var pending *time.Timer
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(ev.Name) != filepath.Clean(input) {
						continue
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
						continue
					}
					if pending != nil {
						pending.Stop()
					}
					pending = time.AfterFunc(watchDebounce, regenerate)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.WithError(err).Error("watch error")
				case <-sig:
					return nil
				}
			}
		},
	}
)

// runGenerate re-runs the same pipeline as `cola generate`, reusing its
// package-level output flags so `watch` behaves identically between saves.
func runGenerate(input string) error {
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

	if genMode == "module" {
		return writeModule(crateName, art)
	}
	return writeCrate(crateName, pkgName, art)
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 150*time.Millisecond, "quiet period after a save before regenerating")
	watchCmd.Flags().StringVar(&genMode, "mode", "crate", "output layout: crate or module")
	watchCmd.Flags().StringVar(&genCrateName, "crate-name", "", "package/crate name, default derived from the input file stem")
	watchCmd.Flags().StringVar(&genOutput, "output", "generated", "output directory")
	rootCmd.AddCommand(watchCmd)
}
