package preprocess

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reHorizWS   = regexp.MustCompile(`[ \t]+`)
	reBlankRuns = regexp.MustCompile(`\n\s*\n+`)
)

// noiseTokens are single-symbol OCR artifacts dropped when they stand alone
// between whitespace.
var noiseTokens = map[string]struct{}{
	"·": {},
	"*": {},
	"-": {},
	"~": {},
}

// labelCompactions rewrites spaced-out Korean field labels into their compact
// canonical form. Compact forms still match their own pattern, so applying
// the table repeatedly is a no-op after the first pass.
var labelCompactions = []struct {
	re      *regexp.Regexp
	compact string
}{
	{regexp.MustCompile(`차\s*량\s*번\s*호`), "차량번호"},
	{regexp.MustCompile(`차\s*번\s*호`), "차번호"},
	{regexp.MustCompile(`총\s*중\s*량`), "총중량"},
	{regexp.MustCompile(`공\s*차\s*중\s*량`), "공차중량"},
	{regexp.MustCompile(`차\s*중\s*량`), "차중량"},
	{regexp.MustCompile(`실\s*중\s*량`), "실중량"},
	{regexp.MustCompile(`계\s*량\s*일\s*자`), "계량일자"},
	{regexp.MustCompile(`거\s*래\s*처`), "거래처"},
	{regexp.MustCompile(`상\s*호`), "상호"},
	{regexp.MustCompile(`품\s*명`), "품명"},
	{regexp.MustCompile(`제\s*품\s*명`), "제품명"},
}

// Cleaner turns raw OCR payloads into a single normalized text blob ready
// for pattern-based extraction.
type Cleaner struct {
	logger *slog.Logger
}

func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean decodes a raw OCR document and runs the cleaning pipeline over its
// text. Returns a FormatError when the payload matches no supported shape.
func (c *Cleaner) Clean(raw []byte) (string, *float64, error) {
	payload, err := DecodePayload(raw)
	if err != nil {
		return "", nil, err
	}
	text := c.CleanText(payload.Text)
	c.logger.Debug("cleaner.done", "bytes_in", len(raw), "chars_out", len(text))
	return text, payload.Confidence, nil
}

// CleanText applies unicode folding, whitespace normalization and noise
// removal, in that order. Idempotent.
func (c *Cleaner) CleanText(text string) string {
	text = norm.NFKC.String(text)
	text = normalizeWhitespace(text)
	text = removeNoise(text)
	return text
}

// CompactLabels rewrites spaced-out domain labels ("총 중 량") into their
// compact form ("총중량") so the extraction patterns hit more often. Safe to
// apply any number of times.
func CompactLabels(text string) string {
	for _, lc := range labelCompactions {
		text = lc.re.ReplaceAllString(text, lc.compact)
	}
	return text
}

func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = reHorizWS.ReplaceAllString(text, " ")
	text = reBlankRuns.ReplaceAllString(text, "\n")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func removeNoise(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		tokens := strings.Fields(line)
		filtered := tokens[:0]
		for _, tok := range tokens {
			if _, noisy := noiseTokens[tok]; noisy {
				continue
			}
			filtered = append(filtered, tok)
		}
		if len(filtered) == 0 {
			continue
		}
		kept = append(kept, strings.Join(filtered, " "))
	}
	return strings.Join(kept, "\n")
}
