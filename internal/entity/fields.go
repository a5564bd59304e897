package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractedFields holds the raw string fragments pulled out of cleaned OCR
// text, one slot per recognized field. A nil slot means no pattern matched.
type ExtractedFields struct {
	Date            *string
	Time            *string
	VehicleNumber   *string
	GrossWeight     *string
	TareWeight      *string
	NetWeight       *string
	CustomerName    *string
	ProductName     *string
	TransactionType *string
	MeasurementID   *string
	Location        *string
	RawText         string
}

// NormalizedFields holds the typed, canonical values derived from
// ExtractedFields. A nil slot means the fragment was missing or unparseable.
type NormalizedFields struct {
	GrossWeightKg   *decimal.Decimal
	TareWeightKg    *decimal.Decimal
	NetWeightKg     *decimal.Decimal
	VehicleNumber   *string
	MeasurementDate *time.Time
	MeasurementTime *string
	CustomerName    *string
	ProductName     *string
	TransactionType *string
	MeasurementID   *string
	Location        *string
	RawText         string
}

// Body renders the normalized fields as a report body. Used as the fallback
// output when record construction fails, so no data is lost.
func (n NormalizedFields) Body(confidence *float64) *RecordBody {
	return &RecordBody{
		GrossWeightKg:   decimalPtrToFloat(n.GrossWeightKg),
		TareWeightKg:    decimalPtrToFloat(n.TareWeightKg),
		NetWeightKg:     decimalPtrToFloat(n.NetWeightKg),
		VehicleNumber:   n.VehicleNumber,
		MeasurementDate: timePtrToISO(n.MeasurementDate),
		MeasurementTime: n.MeasurementTime,
		CustomerName:    n.CustomerName,
		ProductName:     n.ProductName,
		TransactionType: n.TransactionType,
		MeasurementID:   n.MeasurementID,
		Location:        n.Location,
		RawText:         n.RawText,
		ConfidenceScore: confidence,
	}
}

func decimalPtrToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func timePtrToISO(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
