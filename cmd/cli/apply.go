package main

import (
	"fmt"

	"energy-measures/internal/config"
	"energy-measures/internal/measure"
	"energy-measures/internal/workflow"

	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "apply <workflow.yaml|workflow.hcl>",
		Short: "Run every step of a workflow file and write its outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if outDir != "" {
				w.OutputDir = outDir
			}

			reg, err := openRegistry(w.TariffDir)
			if err != nil {
				return err
			}
			res, err := workflow.New(reg).RunWorkflow(cmd.Context(), w)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range res.Steps {
				fmt.Fprintf(out, "[%d] %s: %s\n", s.Index, s.Measure, s.Result.Outcome)
				for _, e := range s.Result.Errors {
					fmt.Fprintf(out, "    error: %s\n", e)
				}
				if s.Result.FinalCondition != "" {
					fmt.Fprintf(out, "    %s\n", s.Result.FinalCondition)
				}
			}

			written, err := workflow.WriteOutputs(w.OutputDir, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote results to %s\n", written.Results)

			if res.Outcome == measure.Fail {
				return fmt.Errorf("workflow stopped at step %d: %w", res.FailedStep, errMeasureFailed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (overrides output_dir of the workflow)")
	return cmd
}
