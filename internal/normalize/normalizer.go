package normalize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weighworks/weighbridge-parser/internal/entity"
)

var (
	reSeparators = regexp.MustCompile(`[,\s]`)
	reInternalWS = regexp.MustCompile(`\s+`)
	reSeqSuffix  = regexp.MustCompile(`-\d{5,6}$`)
	reKoreanDate = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)
	reKoreanTime = regexp.MustCompile(`(\d{1,2})시\s*(\d{1,2})분`)
	reClockTime  = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
)

// dateLayouts are tried in order; first success wins.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
}

// Normalizer converts raw extracted fragments into canonical typed values.
// Conversion never fails: an invalid fragment becomes nil and the reason is
// logged.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts every slot of the extracted fields.
func (n *Normalizer) Normalize(extracted entity.ExtractedFields) entity.NormalizedFields {
	normalized := entity.NormalizedFields{
		GrossWeightKg:   n.Weight(extracted.GrossWeight),
		TareWeightKg:    n.Weight(extracted.TareWeight),
		NetWeightKg:     n.Weight(extracted.NetWeight),
		VehicleNumber:   n.VehicleNumber(extracted.VehicleNumber),
		MeasurementDate: n.Date(extracted.Date),
		MeasurementTime: n.Time(extracted.Time),
		CustomerName:    n.String(extracted.CustomerName),
		ProductName:     n.String(extracted.ProductName),
		TransactionType: n.String(extracted.TransactionType),
		MeasurementID:   n.String(extracted.MeasurementID),
		Location:        n.String(extracted.Location),
		RawText:         extracted.RawText,
	}
	n.logger.Debug("normalize.done", "non_nil", countNonNil(normalized))
	return normalized
}

// Weight strips group separators (comma or embedded space) and parses the
// digits as an arbitrary-precision decimal. Negative or non-numeric input
// becomes nil.
func (n *Normalizer) Weight(raw *string) *decimal.Decimal {
	if raw == nil || *raw == "" {
		return nil
	}
	cleaned := reSeparators.ReplaceAllString(*raw, "")
	weight, err := decimal.NewFromString(cleaned)
	if err != nil {
		n.logger.Warn("normalize.weight.unparseable", "raw", *raw, "err", err)
		return nil
	}
	if weight.IsNegative() {
		n.logger.Warn("normalize.weight.negative", "raw", *raw)
		return nil
	}
	return &weight
}

// Date parses hyphen/slash/dot-separated year-month-day or the Korean
// "YYYY년 MM월 DD일" phrase. A trailing 5-6 digit sequence id (an unrelated
// counter printed after the date) is stripped before matching.
func (n *Normalizer) Date(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	s := strings.TrimSpace(*raw)

	if m := reKoreanDate.FindStringSubmatch(s); m != nil {
		s = fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}
	s = reSeqSuffix.ReplaceAllString(s, "")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return &t
		}
	}
	n.logger.Warn("normalize.date.unparseable", "raw", *raw)
	return nil
}

// Time normalizes HH:MM, HH:MM:SS or the Korean "H시 M분" phrase, always
// zero-padding the hour.
func (n *Normalizer) Time(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	if m := reKoreanTime.FindStringSubmatch(*raw); m != nil {
		out := fmt.Sprintf("%s:%s", zeroPad(m[1]), zeroPad(m[2]))
		return &out
	}
	if m := reClockTime.FindStringSubmatch(*raw); m != nil {
		var out string
		if m[3] != "" {
			out = fmt.Sprintf("%s:%s:%s", zeroPad(m[1]), m[2], m[3])
		} else {
			out = fmt.Sprintf("%s:%s", zeroPad(m[1]), m[2])
		}
		return &out
	}
	n.logger.Warn("normalize.time.unparseable", "raw", *raw)
	return nil
}

// VehicleNumber strips all internal whitespace.
func (n *Normalizer) VehicleNumber(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	out := reInternalWS.ReplaceAllString(strings.TrimSpace(*raw), "")
	if out == "" {
		return nil
	}
	return &out
}

// String collapses internal whitespace to single spaces and trims.
func (n *Normalizer) String(raw *string) *string {
	if raw == nil {
		return nil
	}
	out := reInternalWS.ReplaceAllString(strings.TrimSpace(*raw), " ")
	if out == "" {
		return nil
	}
	return &out
}

// ComputeNetWeight returns gross - tare, or nil when either input is
// missing. Independent of any extracted net value.
func ComputeNetWeight(gross, tare *decimal.Decimal) *decimal.Decimal {
	if gross == nil || tare == nil {
		return nil
	}
	net := gross.Sub(*tare)
	return &net
}

func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func countNonNil(f entity.NormalizedFields) int {
	count := 0
	for _, v := range []bool{
		f.GrossWeightKg != nil, f.TareWeightKg != nil, f.NetWeightKg != nil,
		f.VehicleNumber != nil, f.MeasurementDate != nil, f.MeasurementTime != nil,
		f.CustomerName != nil, f.ProductName != nil, f.TransactionType != nil,
		f.MeasurementID != nil, f.Location != nil,
	} {
		if v {
			count++
		}
	}
	return count
}
