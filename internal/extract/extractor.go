package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/weighworks/weighbridge-parser/internal/entity"
)

var reAnyWeight = regexp.MustCompile(`(?i)(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`)

// Extractor pulls raw field fragments out of cleaned OCR text using the
// shared pattern registry. Extraction never fails; unmatched fields stay nil.
type Extractor struct {
	patterns *Registry
	logger   *slog.Logger
}

func NewExtractor(patterns *Registry, logger *slog.Logger) *Extractor {
	if patterns == nil {
		patterns = DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{patterns: patterns, logger: logger}
}

// Extract runs every field's pattern list over the text. For each field the
// first matching pattern wins; there is no scoring or merging across
// patterns.
func (e *Extractor) Extract(text string) entity.ExtractedFields {
	fields := entity.ExtractedFields{
		Date:            e.firstMatch("date", e.patterns.Date, text),
		Time:            e.firstMatch("time", e.patterns.Time, text),
		VehicleNumber:   e.firstMatch("vehicle_number", e.patterns.VehicleNumber, text),
		GrossWeight:     e.firstMatch("gross_weight", e.patterns.GrossWeight, text),
		TareWeight:      e.firstMatch("tare_weight", e.patterns.TareWeight, text),
		NetWeight:       e.firstMatch("net_weight", e.patterns.NetWeight, text),
		CustomerName:    e.firstMatch("customer_name", e.patterns.CustomerName, text),
		ProductName:     e.firstMatch("product_name", e.patterns.ProductName, text),
		TransactionType: e.firstMatch("transaction_type", e.patterns.TransactionType, text),
		MeasurementID:   e.firstMatch("measurement_id", e.patterns.MeasurementID, text),
		Location:        e.firstMatch("location", e.patterns.Location, text),
		RawText:         text,
	}

	matched := 0
	for _, v := range []*string{
		fields.Date, fields.Time, fields.VehicleNumber,
		fields.GrossWeight, fields.TareWeight, fields.NetWeight,
		fields.CustomerName, fields.ProductName, fields.TransactionType,
		fields.MeasurementID, fields.Location,
	} {
		if v != nil {
			matched++
		}
	}
	e.logger.Info("extract.done", "fields_matched", matched)
	return fields
}

// firstMatch returns the first pattern hit. A pattern with several capture
// groups contributes the concatenation of its non-empty groups in order;
// used where OCR noise splits a number because a timestamp sits between
// label and value.
func (e *Extractor) firstMatch(field string, patterns []*regexp.Regexp, text string) *string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var value string
		if len(m) > 2 {
			var sb strings.Builder
			for _, g := range m[1:] {
				sb.WriteString(g)
			}
			value = sb.String()
		} else {
			value = m[1]
		}
		value = strings.TrimSpace(value)
		e.logger.Debug("extract.match", "field", field, "value", value)
		return &value
	}
	e.logger.Debug("extract.miss", "field", field)
	return nil
}

// AllWeights returns every "<number> kg" substring in the text regardless of
// label. Diagnostic only; not used by the main pipeline.
func AllWeights(text string) []string {
	var weights []string
	for _, m := range reAnyWeight.FindAllStringSubmatch(text, -1) {
		weights = append(weights, m[1])
	}
	return weights
}
