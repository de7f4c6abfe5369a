package workflow

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"handle",
		"name",
		"item_handle",
		"item_name",
		"item_type",
		"category",
		"cost_units",
		"cost",
		"repeat_period_years",
		"years_from_start",
		"year0_capital",
		"present_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			r.Handle.String(),
			r.Name,
			r.ItemHandle.String(),
			r.ItemName,
			string(r.ItemType),
			string(r.Category),
			string(r.CostUnits),
			r.Cost.StringFixed(2),
			strconv.Itoa(r.RepeatPeriodYears),
			strconv.Itoa(r.YearsFromStart),
			strconv.FormatBool(r.Year0Capital),
			r.PresentValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
