package preprocess

import "regexp"

var (
	reWeightish = regexp.MustCompile(`(?i)\d[\d,\s]*\s*kg`)
	reDateish   = regexp.MustCompile(`\d{4}[-/.년]\s*\d{1,2}`)
	reLabelish  = regexp.MustCompile(`총중량|차중량|공차중량|실중량|차량번호|계량일자`)
)

// HeuristicConfidence estimates a confidence score from characteristics of
// cleaned text, used when the OCR payload carries no confidence of its own.
// Each weighbridge artifact found (weight-with-unit, date, domain label)
// raises the score from a low base.
func HeuristicConfidence(text string) float64 {
	score := 0.2
	if reWeightish.MatchString(text) {
		score += 0.2
	}
	if reDateish.MatchString(text) {
		score += 0.2
	}
	if reLabelish.MatchString(text) {
		score += 0.15
	}
	if len(text) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
