package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weighworks/weighbridge-parser/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestWeightSeparatorsStripped(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		raw  string
		want int64
	}{
		{"12,480", 12480},
		{"13 460", 13460},
		{"5,010", 5010},
		{"7470", 7470},
		{"1,234,567", 1234567},
	}
	for _, tt := range tests {
		got := n.Weight(strPtr(tt.raw))
		require.NotNil(t, got, "raw=%s", tt.raw)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "raw=%s got=%s", tt.raw, got)
	}
}

func TestWeightRejectsGarbage(t *testing.T) {
	n := NewNormalizer(nil)

	for _, raw := range []string{"abc", "12kg", "--", "12.3.4"} {
		assert.Nil(t, n.Weight(strPtr(raw)), "raw=%s", raw)
	}
	assert.Nil(t, n.Weight(strPtr("-500")))
	assert.Nil(t, n.Weight(nil))
	assert.Nil(t, n.Weight(strPtr("")))
}

func TestDateTemplateFamilies(t *testing.T) {
	n := NewNormalizer(nil)

	want := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2026-02-02",
		"2026-2-2",
		"2026/02/02",
		"2026.02.02",
		"2026년 2월 2일",
	} {
		got := n.Date(strPtr(raw))
		require.NotNil(t, got, "raw=%s", raw)
		assert.True(t, got.Equal(want), "raw=%s got=%s", raw, got)
	}
}

func TestDateStripsSequenceSuffix(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Date(strPtr("2026-02-02-00004"))
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 2, got.Day())
}

func TestDateUnparseable(t *testing.T) {
	n := NewNormalizer(nil)

	for _, raw := range []string{"02-02-2026", "not a date", "2026-13-40"} {
		assert.Nil(t, n.Date(strPtr(raw)), "raw=%s", raw)
	}
	assert.Nil(t, n.Date(nil))
}

func TestTimeZeroPadsHour(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		raw  string
		want string
	}{
		{"7:05", "07:05"},
		{"12:30", "12:30"},
		{"9:15:42", "09:15:42"},
		{"7시 5분", "07:05"},
		{"13시 20분", "13:20"},
	}
	for _, tt := range tests {
		got := n.Time(strPtr(tt.raw))
		require.NotNil(t, got, "raw=%s", tt.raw)
		assert.Equal(t, tt.want, *got)
	}

	assert.Nil(t, n.Time(strPtr("noon")))
	assert.Nil(t, n.Time(nil))
}

func TestVehicleNumberStripsWhitespace(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.VehicleNumber(strPtr("서울 82가 1234"))
	require.NotNil(t, got)
	assert.Equal(t, "서울82가1234", *got)

	assert.Nil(t, n.VehicleNumber(nil))
	assert.Nil(t, n.VehicleNumber(strPtr("   ")))
}

func TestStringCollapsesWhitespace(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.String(strPtr("  대한   상사\t(주) "))
	require.NotNil(t, got)
	assert.Equal(t, "대한 상사 (주)", *got)

	assert.Nil(t, n.String(strPtr("   ")))
	assert.Nil(t, n.String(nil))
}

func TestComputeNetWeight(t *testing.T) {
	gross := decimal.NewFromInt(12480)
	tare := decimal.NewFromInt(7470)

	net := ComputeNetWeight(&gross, &tare)
	require.NotNil(t, net)
	assert.True(t, net.Equal(decimal.NewFromInt(5010)))

	assert.Nil(t, ComputeNetWeight(nil, &tare))
	assert.Nil(t, ComputeNetWeight(&gross, nil))
}

func TestNormalizeAllSlots(t *testing.T) {
	n := NewNormalizer(nil)

	extracted := entity.ExtractedFields{
		Date:            strPtr("2026-02-02"),
		Time:            strPtr("7:30"),
		VehicleNumber:   strPtr("서울 82가 1234"),
		GrossWeight:     strPtr("12,480"),
		TareWeight:      strPtr("7,470"),
		NetWeight:       strPtr("5,010"),
		CustomerName:    strPtr("대한상사"),
		TransactionType: strPtr("입고"),
		RawText:         "raw",
	}

	got := n.Normalize(extracted)

	require.NotNil(t, got.GrossWeightKg)
	assert.True(t, got.GrossWeightKg.Equal(decimal.NewFromInt(12480)))
	require.NotNil(t, got.MeasurementDate)
	assert.Equal(t, 2026, got.MeasurementDate.Year())
	require.NotNil(t, got.MeasurementTime)
	assert.Equal(t, "07:30", *got.MeasurementTime)
	require.NotNil(t, got.VehicleNumber)
	assert.Equal(t, "서울82가1234", *got.VehicleNumber)
	assert.Nil(t, got.ProductName)
	assert.Nil(t, got.Location)
	assert.Equal(t, "raw", got.RawText)
}
