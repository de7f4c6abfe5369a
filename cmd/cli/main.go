// Command cli lists, inspects and runs the energy measures, applies workflow
// files, and reports on tariffs and lifecycle costs.
package main

import (
	"fmt"
	"os"
	"strings"

	"energy-measures/internal/measure"
	"energy-measures/internal/measures"
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
	var logLevel string

	root := &cobra.Command{
		Use:          "cli",
		Short:        "Run building energy measures against models and workspaces",
		SilenceUsage: true,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	}
	root.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(
		newListCmd(),
		newArgsCmd(),
		newRunCmd(),
		newApplyCmd(),
		newTariffsCmd(),
		newTranslateCmd(),
		newLCCCmd(),
	)
	return root
}

// openTariffs opens dir, or TARIFF_DIR, or the bundled library, with the
// parse cache configured from the environment.
func openTariffs(dir string) (*tariff.Library, error) {
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
		return nil, err
	}
	return lib.WithCache(tariff.CacheFromEnv()), nil
}

func openRegistry(tariffDir string) (*measure.Registry, error) {
	lib, err := openTariffs(tariffDir)
	if err != nil {
		return nil, err
	}
	return measures.NewRegistry(lib)
}

// parseArgs turns repeated key=value flags into user arguments.
func parseArgs(pairs []string) (measure.UserArguments, error) {
	out := measure.UserArguments{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
