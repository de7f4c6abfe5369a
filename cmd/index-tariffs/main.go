// Command index-tariffs writes a JSON index of a tariff resource directory and
// reports what changed since the previous index.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"energy-measures/internal/tariff"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir, outputPath, seedFile string

	cmd := &cobra.Command{
		Use:          "index-tariffs",
		Short:        "Write a JSON index of the tariff library",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if outputPath == "" {
			outputPath = tariff.DefaultIndexPath()
		}
		if seedFile == "" {
			seedFile = outputPath
		}

		var (
			lib *tariff.Library
			err error
		)
		if dir != "" {
			lib, err = tariff.Open(dir)
		} else {
			lib, err = tariff.Default()
		}
		if err != nil {
			return fmt.Errorf("failed to open tariffs: %w", err)
		}

		idx := lib.Index(time.Now())

		// Compare with the previous index when there is one.
		if prev, err := tariff.LoadIndex(seedFile); err == nil {
			added, removed := diffIndex(prev, idx)
			for _, f := range added {
				fmt.Fprintf(cmd.OutOrStdout(), "+ %s\n", f)
			}
			for _, f := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", f)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			logrus.WithError(err).Warn("ignoring unreadable previous index")
		}

		if err := tariff.SaveIndex(idx, outputPath); err != nil {
			return fmt.Errorf("failed to save index: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d tariffs from %s to %s\n", len(idx.Tariffs), idx.Source, outputPath)
		return nil
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Tariff resource directory (default: TARIFF_DIR or bundled)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path (default: TARIFF_INDEX_FILE or ./data/tariffs.json)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Previous index to compare against (default: the output file)")
	return cmd
}

// diffIndex lists files present only in next (added) and only in prev
// (removed).
func diffIndex(prev, next *tariff.Index) (added, removed []string) {
	seen := map[string]bool{}
	for _, e := range prev.Tariffs {
		seen[e.File] = true
	}
	current := map[string]bool{}
	for _, e := range next.Tariffs {
		current[e.File] = true
		if !seen[e.File] {
			added = append(added, e.File)
		}
	}
	for _, e := range prev.Tariffs {
		if !current[e.File] {
			removed = append(removed, e.File)
		}
	}
	return added, removed
}
