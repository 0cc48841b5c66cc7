package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"govmmc/internal/errors"
)

// Batch is a set of draws with the parameters needed to replay it
type Batch struct {
	RunID   string
	Seed    uint32
	Dist    Distribution
	Samples []float64
}

// NewBatch stamps samples with a fresh time-ordered run id
func NewBatch(seed uint32, dist Distribution, samples []float64) *Batch {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Batch{RunID: id.String(), Seed: seed, Dist: dist, Samples: samples}
}

var sampleHeaders = []string{"draw", "value"}

// WriteCSV writes one row per draw
func WriteCSV(path string, b *Batch) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ResourceUnavailable(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeaders); err != nil {
		return err
	}
	for i, v := range b.Samples {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteXLSX writes the draws to a "Samples" sheet and the run parameters and
// summary to a "Summary" sheet.
func WriteXLSX(path string, b *Batch) error {
	summary, err := Summarize(b.Samples)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const samples = "Samples"
	if err := f.SetSheetName("Sheet1", samples); err != nil {
		return err
	}
	for c, h := range sampleHeaders {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(samples, cell, h); err != nil {
			return err
		}
	}
	for i, v := range b.Samples {
		row := []interface{}{i, v}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(samples, cell, &row); err != nil {
			return err
		}
	}

	const meta = "Summary"
	if _, err := f.NewSheet(meta); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"run_id", b.RunID},
		{"seed", int64(b.Seed)},
		{"distribution", string(b.Dist.Kind)},
		{"parameters", describe(b.Dist)},
		{"count", summary.Count},
		{"mean", summary.Mean},
		{"std_dev", summary.StdDev},
		{"min", summary.Min},
		{"max", summary.Max},
		{"median", summary.Median},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(meta, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ResourceUnavailable(path, err)
	}
	return nil
}

func describe(d Distribution) string {
	switch d.Kind {
	case KindInt:
		return fmt.Sprintf("[%d, %d]", d.Min, d.Max)
	case KindNormal:
		return fmt.Sprintf("mean=%g stddev=%g", d.Mean, d.StdDev)
	default:
		return "[0, 1]"
	}
}
