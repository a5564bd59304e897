package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/weighworks/weighbridge-parser/internal/common"
	"github.com/weighworks/weighbridge-parser/internal/entity"
)

// Format selects the output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a user-supplied format string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", common.NewAppError("BAD_FORMAT", fmt.Sprintf("unsupported output format %q", s), common.ErrInvalidInput)
}

// csvColumns is the flattened column order. raw_text is dropped to keep the
// file manageable; missing values serialize as empty strings.
var csvColumns = []string{
	"file_name", "processed_at", "is_valid",
	"gross_weight_kg", "tare_weight_kg", "net_weight_kg",
	"vehicle_number", "measurement_date", "measurement_time",
	"customer_name", "product_name", "transaction_type",
	"measurement_id", "location", "confidence_score",
}

// Writer serializes item reports to JSON, CSV or XLSX files.
type Writer struct {
	logger *slog.Logger
	indent int
}

func NewWriter(cfg common.OutputConfig, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	indent := cfg.JSONIndent
	if indent <= 0 {
		indent = 2
	}
	return &Writer{logger: logger, indent: indent}
}

// Write serializes the reports in the selected format.
func (w *Writer) Write(path string, format Format, reports []entity.ItemReport) error {
	switch format {
	case FormatJSON:
		return w.WriteJSON(path, reports)
	case FormatCSV:
		return w.WriteCSV(path, reports)
	case FormatXLSX:
		return w.WriteXLSX(path, reports)
	}
	return common.NewAppError("BAD_FORMAT", fmt.Sprintf("unsupported output format %q", format), common.ErrInvalidInput)
}

// WriteJSON writes the pretty-printed report list, preserving non-ASCII
// text. Each document is checked against the report schema first; a
// mismatch is logged and the document is written anyway.
func (w *Writer) WriteJSON(path string, reports []entity.ItemReport) error {
	for i := range reports {
		if err := w.checkSchema(&reports[i]); err != nil {
			w.logger.Warn("export.schema.mismatch", "file", reports[i].FileName, "err", err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", w.indent))
	if err := enc.Encode(reports); err != nil {
		return common.WrapError(err, "encode reports")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return common.WrapError(err, "write json")
	}
	w.logger.Info("export.json.ok", "path", path, "records", len(reports))
	return nil
}

// WriteCSV writes the flattened form of each report.
func (w *Writer) WriteCSV(path string, reports []entity.ItemReport) error {
	f, err := os.Create(path)
	if err != nil {
		return common.WrapError(err, "create csv")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvColumns); err != nil {
		return common.WrapError(err, "write csv header")
	}
	for _, r := range reports {
		if err := cw.Write(flattenReport(r)); err != nil {
			return common.WrapError(err, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return common.WrapError(err, "flush csv")
	}
	w.logger.Info("export.csv.ok", "path", path, "records", len(reports))
	return nil
}

// WriteXLSX writes a workbook with one row per report.
func (w *Writer) WriteXLSX(path string, reports []entity.ItemReport) error {
	f := excelize.NewFile()
	const sheet = "Records"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return common.WrapError(err, "create sheet")
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range csvColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range reports {
		for colIdx, v := range flattenReport(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28) // file name
	_ = f.SetColWidth(sheet, "B", "B", 22) // processed at
	_ = f.SetColWidth(sheet, "D", "F", 16) // weights
	_ = f.SetColWidth(sheet, "G", "N", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return common.WrapError(err, "xlsx write")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return common.WrapError(err, "write xlsx")
	}
	w.logger.Info("export.xlsx.ok", "path", path, "records", len(reports))
	return nil
}

func (w *Writer) checkSchema(report *entity.ItemReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return compiledReportSchema.Validate(doc)
}

func flattenReport(r entity.ItemReport) []string {
	row := []string{
		r.FileName,
		r.ProcessedAt.Format(time.RFC3339),
		strconv.FormatBool(r.Validation.IsValid),
	}
	if r.Data == nil {
		for i := len(row); i < len(csvColumns); i++ {
			row = append(row, "")
		}
		return row
	}
	row = append(row,
		floatOrEmpty(r.Data.GrossWeightKg),
		floatOrEmpty(r.Data.TareWeightKg),
		floatOrEmpty(r.Data.NetWeightKg),
		strOrEmpty(r.Data.VehicleNumber),
		strOrEmpty(r.Data.MeasurementDate),
		strOrEmpty(r.Data.MeasurementTime),
		strOrEmpty(r.Data.CustomerName),
		strOrEmpty(r.Data.ProductName),
		strOrEmpty(r.Data.TransactionType),
		strOrEmpty(r.Data.MeasurementID),
		strOrEmpty(r.Data.Location),
		floatOrEmpty(r.Data.ConfidenceScore),
	)
	return row
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
