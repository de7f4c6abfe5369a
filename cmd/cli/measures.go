package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"energy-measures/internal/idf"
	"energy-measures/internal/measure"
	"energy-measures/internal/model"
	"energy-measures/internal/translate"

	"github.com/spf13/cobra"
)

var errMeasureFailed = errors.New("measure failed")

func newListCmd() *cobra.Command {
	var tariffDir string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered measures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry(tariffDir)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTARGET\tDISPLAY NAME")
			for _, d := range reg.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Target, d.DisplayName)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&tariffDir, "tariff-dir", "", "Tariff resource directory (default: TARIFF_DIR or bundled)")
	return cmd
}

func newArgsCmd() *cobra.Command {
	var modelPath, tariffDir string
	cmd := &cobra.Command{
		Use:   "args <measure>",
		Short: "Show the arguments of a measure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry(tariffDir)
			if err != nil {
				return err
			}
			target, err := reg.Target(args[0])
			if err != nil {
				return err
			}

			var vec measure.ArgumentVector
			if target == measure.TargetModel {
				m := model.New("Building")
				if modelPath != "" {
					if m, err = model.Load(modelPath); err != nil {
						return err
					}
				}
				mm, _ := reg.Model(args[0])
				vec = mm.Arguments(m)
			} else {
				wm, _ := reg.Workspace(args[0])
				vec = wm.Arguments(idf.NewWorkspace())
			}
			printArguments(cmd.OutOrStdout(), vec)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "Model JSON whose objects populate choices")
	cmd.Flags().StringVar(&tariffDir, "tariff-dir", "", "Tariff resource directory (default: TARIFF_DIR or bundled)")
	return cmd
}

func printArguments(out io.Writer, vec measure.ArgumentVector) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tDEFAULT\tDISPLAY NAME")
	for _, a := range vec {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Default, a.DisplayName)
		for _, c := range a.Choices {
			fmt.Fprintf(w, "\t\t- %s\t%s\n", c.Display, c.Value)
		}
	}
	w.Flush()
}

type runFlags struct {
	modelPath string
	idfPath   string
	outPath   string
	tariffDir string
	args      []string
	asJSON    bool
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <measure>",
		Short: "Run one measure against a model or a workspace",
		Long:  "Model measures need --model. Workspace measures take --idf, or translate --model. The changed document is written to --out when given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.modelPath, "model", "", "Model JSON file")
	cmd.Flags().StringVar(&f.idfPath, "idf", "", "Definition file")
	cmd.Flags().StringVar(&f.outPath, "out", "", "Where to write the changed model or workspace")
	cmd.Flags().StringVar(&f.tariffDir, "tariff-dir", "", "Tariff resource directory (default: TARIFF_DIR or bundled)")
	cmd.Flags().StringArrayVar(&f.args, "arg", nil, "Measure argument as key=value (can be repeated)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func runMeasure(cmd *cobra.Command, name string, f runFlags) error {
	reg, err := openRegistry(f.tariffDir)
	if err != nil {
		return err
	}
	target, err := reg.Target(name)
	if err != nil {
		return err
	}
	user, err := parseArgs(f.args)
	if err != nil {
		return err
	}

	var (
		res  measure.Result
		save func() error
	)
	switch target {
	case measure.TargetModel:
		if f.modelPath == "" {
			return fmt.Errorf("measure %s needs --model", name)
		}
		m, err := model.Load(f.modelPath)
		if err != nil {
			return err
		}
		mm, _ := reg.Model(name)
		res = mm.Run(cmd.Context(), m, user)
		save = func() error { return model.Save(m, f.outPath) }
	case measure.TargetWorkspace:
		ws, err := loadWorkspace(f.idfPath, f.modelPath)
		if err != nil {
			return err
		}
		wm, _ := reg.Workspace(name)
		res = wm.Run(cmd.Context(), ws, user)
		save = func() error { return idf.SaveFile(ws, f.outPath) }
	}

	if err := printResult(cmd.OutOrStdout(), res, f.asJSON); err != nil {
		return err
	}
	if res.Failed() {
		return errMeasureFailed
	}
	if f.outPath != "" {
		if err := save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", f.outPath)
	}
	return nil
}

func loadWorkspace(idfPath, modelPath string) (*idf.Workspace, error) {
	switch {
	case idfPath != "":
		return idf.LoadFile(idfPath)
	case modelPath != "":
		m, err := model.Load(modelPath)
		if err != nil {
			return nil, err
		}
		return translate.ToWorkspace(m), nil
	default:
		return nil, errors.New("workspace measures need --idf or --model")
	}
}

func printResult(out io.Writer, res measure.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintf(out, "%s: %s\n", res.Measure, res.Outcome)
	if res.InitialCondition != "" {
		fmt.Fprintf(out, "  initial: %s\n", res.InitialCondition)
	}
	for _, m := range res.Infos {
		fmt.Fprintf(out, "  info: %s\n", m)
	}
	for _, m := range res.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", m)
	}
	for _, m := range res.Errors {
		fmt.Fprintf(out, "  error: %s\n", m)
	}
	if res.FinalCondition != "" {
		fmt.Fprintf(out, "  final: %s\n", res.FinalCondition)
	}
	return nil
}
