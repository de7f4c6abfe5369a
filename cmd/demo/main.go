package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"energy-measures/internal/analysis"
	"energy-measures/internal/config"
	"energy-measures/internal/measure"
	"energy-measures/internal/measures"
	"energy-measures/internal/model"
	"energy-measures/internal/tariff"
	"energy-measures/internal/workflow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Demo:
// - Build a small office model in code
// - Raise the COP of its two-speed coils and price the replacement
// - Translate it and pick tariffs
// - Print each step and the lifecycle cost picture
func main() {
	var (
		outDir   string
		copHigh  string
		copLow   string
		material string
	)
	cmd := &cobra.Command{
		Use:          "demo",
		Short:        "Run both measures on a built-in model",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		steps := []config.Step{
			{Measure: "set_cop_two_speed_dx", Arguments: config.Args{
				"cop_high":                copHigh,
				"cop_low":                 copLow,
				"material_cost":           material,
				"demolition_cost":         "450",
				"demo_cost_initial_const": "true",
				"om_cost":                 "120",
			}},
			{Measure: "tariff_selection_generic"},
		}
		return runDemo(cmd.Context(), cmd.OutOrStdout(), outDir, steps)
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Optional directory to write the model, IDF, ledger and results")
	cmd.Flags().StringVar(&copHigh, "cop-high", "4.2", "Rated high speed COP to set")
	cmd.Flags().StringVar(&copLow, "cop-low", "4.6", "Rated low speed COP to set")
	cmd.Flags().StringVar(&material, "material-cost", "6500", "Material and installation cost per coil ($)")

	logrus.SetLevel(logrus.WarnLevel)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDemo(ctx context.Context, out io.Writer, outDir string, steps []config.Step) error {
	m, err := demoModel()
	if err != nil {
		return err
	}

	lib, err := tariff.Bundled()
	if err != nil {
		return err
	}
	reg, err := measures.NewRegistry(lib)
	if err != nil {
		return err
	}

	res, err := workflow.New(reg).Run(ctx, workflow.Inputs{Model: m}, steps)
	if err != nil {
		return err
	}
	for _, s := range res.Steps {
		fmt.Fprintf(out, "== %s (%s)\n", s.Measure, s.Result.Outcome)
		fmt.Fprintf(out, "   before: %s\n", s.Result.InitialCondition)
		for _, msg := range s.Result.Infos {
			fmt.Fprintf(out, "   - %s\n", msg)
		}
		for _, msg := range s.Result.Warnings {
			fmt.Fprintf(out, "   ! %s\n", msg)
		}
		for _, msg := range s.Result.Errors {
			fmt.Fprintf(out, "   x %s\n", msg)
		}
		fmt.Fprintf(out, "   after:  %s\n", s.Result.FinalCondition)
	}
	if res.Outcome == measure.Fail {
		return fmt.Errorf("step %d failed", res.FailedStep)
	}

	s := analysis.Summarize(m.AllLifeCycleCosts(), m.LCCParameters)
	fmt.Fprintf(out, "\nLifecycle cost over %d years: $%s undiscounted, $%s present value\n",
		s.StudyYears, measure.NeatNumber(s.Undiscounted, 2), measure.NeatNumber(s.PresentValue, 2))
	fmt.Fprintf(out, "Workspace: %d objects\n", res.Workspace.Len())

	if outDir != "" {
		written, err := workflow.WriteOutputs(outDir, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s, %s, %s and %s\n", written.Model, written.IDF, written.Ledger, written.Results)
	}
	return nil
}

// demoModel has two loops with two-speed coils, one with a baseline cost, and
// a third loop that the COP editor must leave alone.
func demoModel() (*model.Model, error) {
	m := model.New("Demo Office")

	for i, cop := range []float64{2.8, 3.1} {
		loop := m.AddAirLoopHVAC(fmt.Sprintf("AHU-%d", i+1))
		loop.AddSupplyComponent(model.NewFanConstantVolume(fmt.Sprintf("Supply Fan %d", i+1)))
		coil := model.NewCoilCoolingDXTwoSpeed(fmt.Sprintf("DX Coil %d", i+1))
		if err := coil.SetRatedHighSpeedCOP(cop); err != nil {
			return nil, err
		}
		if err := coil.SetRatedLowSpeedCOP(cop + 0.3); err != nil {
			return nil, err
		}
		loop.AddSupplyComponent(coil)
		loop.AddSupplyComponent(model.NewCoilHeatingGas(fmt.Sprintf("Gas Heat %d", i+1)))

		if i == 0 {
			if _, err := m.CreateLifeCycleCost("Baseline Coil", coil, decimal.NewFromInt(5200),
				model.CostPerEach, model.CategoryConstruction, 15, 0); err != nil {
				return nil, err
			}
		}
	}

	rtu := m.AddAirLoopHVAC("RTU-Kitchen")
	rtu.AddSupplyComponent(model.NewCoilCoolingDXSingleSpeed("Kitchen DX"))
	return m, nil
}
