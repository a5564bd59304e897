package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weighworks/weighbridge-parser/internal/common"
	"github.com/weighworks/weighbridge-parser/internal/entity"
)

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func sampleReport() entity.ItemReport {
	return entity.ItemReport{
		ID:          uuid.New(),
		FileName:    "sample_01.json",
		ProcessedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
		Validation: entity.ValidationReport{
			IsValid:             true,
			Warnings:            []string{},
			Errors:              []string{},
			WeightConsistency:   true,
			ComputedNetWeightKg: floatPtr(5010),
		},
		Data: &entity.RecordBody{
			GrossWeightKg:   floatPtr(12480),
			TareWeightKg:    floatPtr(7470),
			NetWeightKg:     floatPtr(5010),
			VehicleNumber:   strPtr("서울82가1234"),
			MeasurementDate: strPtr("2026-02-02T00:00:00Z"),
			CustomerName:    strPtr("대한상사"),
			RawText:         "총중량: 12,480 kg",
			ConfidenceScore: floatPtr(0.85),
		},
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"json":   FormatJSON,
		"CSV":    FormatCSV,
		" xlsx ": FormatXLSX,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestWriteJSONPreservesNonASCII(t *testing.T) {
	w := NewWriter(common.OutputConfig{JSONIndent: 2}, nil)
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, w.WriteJSON(path, []entity.ItemReport{sampleReport()}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Korean text is written as-is, not \u-escaped, and output is indented.
	assert.Contains(t, string(raw), "서울82가1234")
	assert.Contains(t, string(raw), "대한상사")
	assert.NotContains(t, string(raw), `\u`)
	assert.Contains(t, string(raw), "\n  ")

	var decoded []entity.ItemReport
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "sample_01.json", decoded[0].FileName)
}

func TestWriteCSVFlattens(t *testing.T) {
	w := NewWriter(common.OutputConfig{}, nil)
	path := filepath.Join(t.TempDir(), "out.csv")

	missing := sampleReport()
	missing.Data.TareWeightKg = nil
	missing.Data.VehicleNumber = nil

	require.NoError(t, w.WriteCSV(path, []entity.ItemReport{missing}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvColumns, rows[0])

	row := rows[1]
	require.Len(t, row, len(csvColumns))
	assert.Equal(t, "sample_01.json", row[0])
	assert.Equal(t, "true", row[2])
	assert.Equal(t, "12480", row[3])
	assert.Equal(t, "", row[4], "missing tare serializes as empty string")
	assert.Equal(t, "", row[6], "missing vehicle serializes as empty string")

	// raw_text is dropped from the flattened form.
	assert.NotContains(t, strings.Join(rows[0], ","), "raw_text")
}

func TestWriteCSVWithoutData(t *testing.T) {
	w := NewWriter(common.OutputConfig{}, nil)
	path := filepath.Join(t.TempDir(), "out.csv")

	report := sampleReport()
	report.Data = nil
	report.Error = "unrecognized OCR payload shape"
	report.Validation.IsValid = false

	require.NoError(t, w.WriteCSV(path, []entity.ItemReport{report}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "false", rows[1][2])
	for _, cell := range rows[1][3:] {
		assert.Equal(t, "", cell)
	}
}

func TestWriteXLSX(t *testing.T) {
	w := NewWriter(common.OutputConfig{}, nil)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, w.WriteXLSX(path, []entity.ItemReport{sampleReport()}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReportSchemaAcceptsValidDocument(t *testing.T) {
	w := NewWriter(common.OutputConfig{}, nil)
	report := sampleReport()
	assert.NoError(t, w.checkSchema(&report))
}

func TestWriteSelectsFormat(t *testing.T) {
	w := NewWriter(common.OutputConfig{}, nil)
	dir := t.TempDir()

	reports := []entity.ItemReport{sampleReport()}
	require.NoError(t, w.Write(filepath.Join(dir, "a.json"), FormatJSON, reports))
	require.NoError(t, w.Write(filepath.Join(dir, "a.csv"), FormatCSV, reports))
	require.Error(t, w.Write(filepath.Join(dir, "a.yaml"), Format("yaml"), reports))
}
