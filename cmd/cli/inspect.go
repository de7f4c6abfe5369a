package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"energy-measures/internal/analysis"
	"energy-measures/internal/idf"
	"energy-measures/internal/measure"
	"energy-measures/internal/model"
	"energy-measures/internal/tariff"
	"energy-measures/internal/translate"
	"energy-measures/internal/workflow"

	"github.com/spf13/cobra"
)

func newTariffsCmd() *cobra.Command {
	var dir, indexPath string
	cmd := &cobra.Command{
		Use:   "tariffs",
		Short: "List the tariff library by meter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openTariffs(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s\n", lib.Source())
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METER\tFILE\tTARIFF\tOBJECTS")
			byMeter := lib.ByMeter()
			for _, m := range lib.Meters() {
				for _, e := range byMeter[m] {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m, e.File, e.TariffName, e.Objects)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if indexPath != "" {
				if err := tariff.SaveIndex(lib.Index(time.Now()), indexPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote index to %s\n", indexPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Tariff resource directory (default: TARIFF_DIR or bundled)")
	cmd.Flags().StringVar(&indexPath, "index", "", "Also write a JSON index to this path")
	return cmd
}

func newTranslateCmd() *cobra.Command {
	var modelPath, outPath string
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a model into a definition file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.Load(modelPath)
			if err != nil {
				return err
			}
			ws := translate.ToWorkspace(m)
			if outPath == "" {
				return ws.Write(cmd.OutOrStdout())
			}
			if err := idf.SaveFile(ws, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d objects to %s\n", ws.Len(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "Model JSON file")
	cmd.Flags().StringVar(&outPath, "out", "", "Output definition file (default: stdout)")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func newLCCCmd() *cobra.Command {
	var (
		modelPath string
		csvPath   string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "lcc",
		Short: "Report lifecycle costs of a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.Load(modelPath)
			if err != nil {
				return err
			}
			s := analysis.Summarize(m.AllLifeCycleCosts(), m.LCCParameters)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Study: %d years at %s%% real discount rate, %d records\n",
				s.StudyYears, measure.NeatFloat(s.DiscountRate*100, 2), s.Records)
			for _, c := range s.Categories() {
				fmt.Fprintf(out, "  %-14s $%s\n", c, measure.NeatNumber(s.ByCategory[c], 2))
			}
			fmt.Fprintf(out, "Year 0 capital: $%s\n", measure.NeatNumber(s.Year0Capital, 2))
			fmt.Fprintf(out, "Undiscounted:   $%s\n", measure.NeatNumber(s.Undiscounted, 2))
			fmt.Fprintf(out, "Present value:  $%s\n", measure.NeatNumber(s.PresentValue, 2))

			ranked := analysis.RankByPresentValue(m)
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tOBJECT\tTYPE\tRECORDS\tPRESENT VALUE")
			for i, r := range ranked {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t$%s\n", i+1, r.Name, r.Type, r.Records, measure.NeatNumber(r.PresentValue, 2))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if csvPath != "" {
				if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
					return err
				}
				ledger := workflow.BuildLedger(m)
				if err := workflow.WriteLedgerCSV(csvPath, ledger); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %d rows to %s\n", len(ledger), csvPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "Model JSON file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the cost ledger as CSV")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of ranked objects to show (0 = all)")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
