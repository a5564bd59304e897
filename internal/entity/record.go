package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WeighbridgeRecord is the final typed representation of a weighbridge
// receipt. Optional slots are pointers; weights, when present, are
// non-negative by construction.
type WeighbridgeRecord struct {
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
	ConfidenceScore *float64
}

// ConstructionError reports a structural constraint violated while building
// a WeighbridgeRecord from normalized fields.
type ConstructionError struct {
	Field  string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot build record: field %s %s", e.Field, e.Reason)
}

// NewWeighbridgeRecord builds a record from normalized fields. Negative
// weights and out-of-range confidence scores are rejected. Weight-tolerance
// consistency is deliberately NOT checked here; the validator is the single
// authority for that rule.
func NewWeighbridgeRecord(n NormalizedFields, confidence *float64) (*WeighbridgeRecord, error) {
	for _, w := range []struct {
		name  string
		value *decimal.Decimal
	}{
		{"gross_weight_kg", n.GrossWeightKg},
		{"tare_weight_kg", n.TareWeightKg},
		{"net_weight_kg", n.NetWeightKg},
	} {
		if w.value != nil && w.value.IsNegative() {
			return nil, &ConstructionError{Field: w.name, Reason: "must be non-negative"}
		}
	}
	if confidence != nil && (*confidence < 0 || *confidence > 1) {
		return nil, &ConstructionError{Field: "confidence_score", Reason: "must be within [0, 1]"}
	}
	return &WeighbridgeRecord{
		GrossWeightKg:   n.GrossWeightKg,
		TareWeightKg:    n.TareWeightKg,
		NetWeightKg:     n.NetWeightKg,
		VehicleNumber:   n.VehicleNumber,
		MeasurementDate: n.MeasurementDate,
		MeasurementTime: n.MeasurementTime,
		CustomerName:    n.CustomerName,
		ProductName:     n.ProductName,
		TransactionType: n.TransactionType,
		MeasurementID:   n.MeasurementID,
		Location:        n.Location,
		RawText:         n.RawText,
		ConfidenceScore: confidence,
	}, nil
}

// Body renders the record as a JSON-ready report body.
func (r *WeighbridgeRecord) Body() *RecordBody {
	return &RecordBody{
		GrossWeightKg:   decimalPtrToFloat(r.GrossWeightKg),
		TareWeightKg:    decimalPtrToFloat(r.TareWeightKg),
		NetWeightKg:     decimalPtrToFloat(r.NetWeightKg),
		VehicleNumber:   r.VehicleNumber,
		MeasurementDate: timePtrToISO(r.MeasurementDate),
		MeasurementTime: r.MeasurementTime,
		CustomerName:    r.CustomerName,
		ProductName:     r.ProductName,
		TransactionType: r.TransactionType,
		MeasurementID:   r.MeasurementID,
		Location:        r.Location,
		RawText:         r.RawText,
		ConfidenceScore: r.ConfidenceScore,
	}
}
