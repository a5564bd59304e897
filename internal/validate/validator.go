package validate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weighworks/weighbridge-parser/internal/common"
	"github.com/weighworks/weighbridge-parser/internal/entity"
	"github.com/weighworks/weighbridge-parser/internal/normalize"
)

// Validator checks completeness, structural sanity and cross-field
// consistency of normalized fields. Validation never fails: findings are
// accumulated as warnings and errors on the result. is_valid flips to false
// only when an error is recorded.
type Validator struct {
	cfg    common.ValidationConfig
	logger *slog.Logger
	clock  func() time.Time
}

func NewValidator(cfg common.ValidationConfig, logger *slog.Logger) *Validator {
	return NewValidatorWithClock(cfg, logger, time.Now)
}

// NewValidatorWithClock fixes the reference "now" used by the temporal
// sanity checks, making validation deterministic for a fixed input.
//
// The config is taken verbatim: a zero tolerance means exact-match net
// weights, not "use the default". Callers wanting the standard thresholds
// start from common.DefaultValidationConfig or common.LoadConfig.
func NewValidatorWithClock(cfg common.ValidationConfig, logger *slog.Logger, clock func() time.Time) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Validator{cfg: cfg, logger: logger, clock: clock}
}

// Validate runs the business rules in fixed order. When one of the three
// weights is missing, the weight relationship and range rules are skipped;
// the temporal and vehicle checks still run on whatever is present.
func (v *Validator) Validate(data entity.NormalizedFields) entity.ValidationResult {
	result := entity.ValidationResult{
		IsValid:           true,
		WeightConsistency: true,
	}

	var missingCritical []string
	for _, f := range []struct {
		name  string
		value *decimal.Decimal
	}{
		{"gross_weight_kg", data.GrossWeightKg},
		{"tare_weight_kg", data.TareWeightKg},
		{"net_weight_kg", data.NetWeightKg},
	} {
		if f.value == nil {
			missingCritical = append(missingCritical, f.name)
		}
	}
	if len(missingCritical) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Missing critical fields: %s", strings.Join(missingCritical, ", ")))
		result.IsValid = false
	}

	var missingImportant []string
	if data.VehicleNumber == nil {
		missingImportant = append(missingImportant, "vehicle_number")
	}
	if data.MeasurementDate == nil {
		missingImportant = append(missingImportant, "measurement_date")
	}
	if len(missingImportant) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Missing important fields: %s", strings.Join(missingImportant, ", ")))
	}

	if len(missingCritical) == 0 {
		gross, tare, net := *data.GrossWeightKg, *data.TareWeightKg, *data.NetWeightKg

		computed := normalize.ComputeNetWeight(data.GrossWeightKg, data.TareWeightKg)
		result.ComputedNetWeight = computed

		if gross.LessThanOrEqual(tare) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Gross weight (%s kg) must be greater than tare weight (%s kg)", gross, tare))
			result.IsValid = false
			result.WeightConsistency = false
		}

		diff := computed.Sub(net).Abs()
		if diff.GreaterThan(v.cfg.ToleranceKg) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Net weight discrepancy: recorded=%s kg, calculated=%s kg, difference=%s kg",
					net, computed, diff))
			result.WeightConsistency = false
		}

		for _, w := range []struct {
			name  string
			value decimal.Decimal
		}{
			{"Gross", gross},
			{"Tare", tare},
			{"Net", net},
		} {
			if w.value.GreaterThan(v.cfg.MaxWeightKg) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s weight (%s kg) exceeds reasonable maximum", w.name, w.value))
			}
			if w.value.LessThan(v.cfg.MinWeightKg) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s weight (%s kg) below reasonable minimum", w.name, w.value))
			}
		}
	}

	if data.MeasurementDate != nil {
		now := v.clock()
		date := *data.MeasurementDate
		if date.After(now) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Measurement date (%s) is in the future", date.Format("2006-01-02")))
		}
		if age := now.Sub(date); age > v.cfg.MaxRecordAge {
			years := int(age.Hours() / (24 * 365.25))
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Measurement date (%s) is unusually old (%d years)", date.Format("2006-01-02"), years))
		}
	}

	if data.VehicleNumber != nil {
		vehicle := *data.VehicleNumber
		runes := len([]rune(vehicle))
		if runes < v.cfg.MinVehicleRunes {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Vehicle number '%s' is unusually short", vehicle))
		}
		if runes > v.cfg.MaxVehicleRunes {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Vehicle number '%s' is unusually long", vehicle))
		}
	}

	v.logger.Info("validate.done",
		"is_valid", result.IsValid,
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
	)
	for _, w := range result.Warnings {
		v.logger.Warn("validate.warning", "detail", w)
	}
	for _, e := range result.Errors {
		v.logger.Error("validate.error", "detail", e)
	}

	return result
}

// completenessChecklist is the fixed field set scored by CompletenessScore.
var completenessChecklist = []string{
	"gross_weight_kg", "tare_weight_kg", "net_weight_kg",
	"vehicle_number", "measurement_date", "customer_name",
	"product_name", "transaction_type", "measurement_id", "location",
}

// CompletenessScore reports the fraction of the fixed 10-field checklist
// that is non-nil. Advisory only; never affects is_valid.
func (v *Validator) CompletenessScore(data entity.NormalizedFields) float64 {
	present := map[string]bool{
		"gross_weight_kg":  data.GrossWeightKg != nil,
		"tare_weight_kg":   data.TareWeightKg != nil,
		"net_weight_kg":    data.NetWeightKg != nil,
		"vehicle_number":   data.VehicleNumber != nil,
		"measurement_date": data.MeasurementDate != nil,
		"customer_name":    data.CustomerName != nil,
		"product_name":     data.ProductName != nil,
		"transaction_type": data.TransactionType != nil,
		"measurement_id":   data.MeasurementID != nil,
		"location":         data.Location != nil,
	}
	count := 0
	for _, f := range completenessChecklist {
		if present[f] {
			count++
		}
	}
	return float64(count) / float64(len(completenessChecklist))
}
