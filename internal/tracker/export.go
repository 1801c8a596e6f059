package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
	"github.com/idilsaglam/expense-tracker/internal/model"
)

var csvHeader = []string{"id", "date", "amount", "description", "category"}

// writeCSV is swapped in tests to simulate a failing writer.
var writeCSV = WriteCSV

// ExportCSV writes every expense to expenses_<unix-ms>.csv inside dir and
// returns the file path. An empty store yields ErrNoExpenses and no file.
func (t *Tracker) ExportCSV(dir string) (string, int, error) {
	all, err := t.expenses.Load()
	if err != nil {
		return "", 0, err
	}
	if len(all) == 0 {
		return "", 0, ErrNoExpenses
	}

	path := filepath.Join(dir, fmt.Sprintf("expenses_%d.csv", t.now().UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create export: %w", err)
	}
	if err := writeCSV(f, all); err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			t.log.Warn("partial export left behind", applog.FieldPath, path, applog.FieldError, rmErr)
		}
		return "", 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("close export: %w", err)
	}
	t.log.Debug("expenses exported", applog.FieldOperation, applog.OpExport,
		applog.FieldPath, path, applog.FieldCount, len(all))
	return path, len(all), nil
}

// WriteCSV writes a header row followed by one row per expense.
func WriteCSV(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			strconv.Itoa(e.ID),
			e.Date.String(),
			e.Amount.String(),
			e.Description,
			string(e.Category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
