package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationResult is the outcome of running the business rules over
// normalized fields. Findings are accumulated in evaluation order.
type ValidationResult struct {
	IsValid           bool
	Warnings          []string
	Errors            []string
	ComputedNetWeight *decimal.Decimal
	WeightConsistency bool
}

// RecordBody is the serialization-ready form of a record: weights as floats,
// dates as RFC 3339 strings, missing slots as JSON null.
type RecordBody struct {
	GrossWeightKg   *float64 `json:"gross_weight_kg"`
	TareWeightKg    *float64 `json:"tare_weight_kg"`
	NetWeightKg     *float64 `json:"net_weight_kg"`
	VehicleNumber   *string  `json:"vehicle_number"`
	MeasurementDate *string  `json:"measurement_date"`
	MeasurementTime *string  `json:"measurement_time"`
	CustomerName    *string  `json:"customer_name"`
	ProductName     *string  `json:"product_name"`
	TransactionType *string  `json:"transaction_type"`
	MeasurementID   *string  `json:"measurement_id"`
	Location        *string  `json:"location"`
	RawText         string   `json:"raw_text"`
	ConfidenceScore *float64 `json:"confidence_score"`
}

// ValidationReport is the validation block embedded in an ItemReport.
type ValidationReport struct {
	IsValid             bool     `json:"is_valid"`
	Warnings            []string `json:"warnings"`
	Errors              []string `json:"errors"`
	WeightConsistency   bool     `json:"weight_consistency"`
	ComputedNetWeightKg *float64 `json:"computed_net_weight_kg"`
}

// ItemReport combines everything reported for one processed input.
type ItemReport struct {
	ID          uuid.UUID        `json:"id"`
	FileName    string           `json:"file_name"`
	ProcessedAt time.Time        `json:"processed_at"`
	Error       string           `json:"error,omitempty"`
	Validation  ValidationReport `json:"validation"`
	Data        *RecordBody      `json:"data,omitempty"`
}

// ToReport converts a ValidationResult into its report form.
func (v ValidationResult) ToReport() ValidationReport {
	warnings := v.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}
	return ValidationReport{
		IsValid:             v.IsValid,
		Warnings:            warnings,
		Errors:              errs,
		WeightConsistency:   v.WeightConsistency,
		ComputedNetWeightKg: decimalPtrToFloat(v.ComputedNetWeight),
	}
}

// BatchSummary aggregates per-item outcomes for a batch run.
type BatchSummary struct {
	Total      int `json:"total"`
	Valid      int `json:"valid"`
	Warned     int `json:"warned"`
	Failed     int `json:"failed"`
	Unreadable int `json:"unreadable"`
}
