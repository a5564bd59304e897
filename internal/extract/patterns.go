package extract

import "regexp"

// Registry holds the ordered, precompiled pattern lists for every extracted
// field. Lists run most-constrained shape first (label + interleaved
// timestamp + value) and generic fallbacks last, so high-confidence reads
// win. Built once at process start and read-only afterward; safe for
// unsynchronized concurrent use.
type Registry struct {
	Date            []*regexp.Regexp
	Time            []*regexp.Regexp
	VehicleNumber   []*regexp.Regexp
	GrossWeight     []*regexp.Regexp
	TareWeight      []*regexp.Regexp
	NetWeight       []*regexp.Regexp
	CustomerName    []*regexp.Regexp
	ProductName     []*regexp.Regexp
	TransactionType []*regexp.Regexp
	MeasurementID   []*regexp.Regexp
	Location        []*regexp.Regexp
}

var defaultRegistry = &Registry{
	Date: compile(
		`(?i)(?:계량\s*일자|날\s*짜|일\s*시|일\s*자)[\s:：]*(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})`,
		`(?i)(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})\s*\d{2}:\d{2}`,
		`(?i)(\d{4}년\s*\d{1,2}월\s*\d{1,2}일)`,
	),
	Time: compile(
		`(?i)(\d{1,2}:\d{2}:\d{2})`,
		`(?i)(\d{1,2}:\d{2})`,
		`(?i)(\d{1,2}시\s*\d{1,2}분)`,
	),
	VehicleNumber: compile(
		`(?i)(?:차량\s*번호|차\s*번호|차량No\.|차량\s*No)[\s:：]*([0-9가-힣]{2,20})`,
		`(?i)(?:번호|No\.?)[\s:：]*([0-9]{4,10})`,
	),
	// Gross-weight receipts often interleave the weighing timestamp between
	// label and value, sometimes splitting the digits ("13 460 kg").
	GrossWeight: compile(
		`(?i)(?:총\s*중\s*량|총중량)[\s:：]*(?:\d{1,2}시\s*\d{1,2}분|\d{1,2}:\d{2})\s*(\d{1,2})\s+(\d{3})\s*kg`,
		`(?i)(?:총\s*중\s*량|총중량)[\s:：]*(?:(?:\d{1,2}시\s*\d{1,2}분|\d{1,2}:\d{2})\s*)?(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?i)(?:총\s*중\s*량|총중량)[\s:：]*(?:[^\d]*)(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?i)\d{2}:\d{2}:\d{2}\s+(\d{1,3}[,\s]?\d{3})\s*kg`,
	),
	TareWeight: compile(
		`(?i)(?:차\s*중\s*량|차중량|공\s*차\s*중\s*량|공차중량)[\s:：]*(?:\d{1,2}\s*:\s*\d{2})\s*(\d{1,2})\s+(\d{3})\s*kg`,
		`(?i)(?:차\s*중\s*량|차중량|공\s*차\s*중\s*량|공차중량)[\s:：]*(?:(?:\d{1,2}시\s*\d{1,2}분|\d{1,2}:\d{2})\s*)?(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?i)(?:차\s*중\s*량|차중량|공\s*차\s*중\s*량|공차중량)[\s:：]*(?:[^\d]*)(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?i)중\s*량[\s:：]*\d{2}:\d{2}:\d{2}\s+(\d{1,3}[,\s]?\d{3})\s*kg`,
	),
	NetWeight: compile(
		`(?i)(?:실\s*중\s*량|실중량)[\s:：]*(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?i)(?:실\s*중\s*량|실중량)[\s:：]*(\d{1,2})\s+(\d{3})\s*kg`,
	),
	CustomerName: compile(
		`(?i)(?:거\s*래\s*처|거래처|상\s*호|상호|회\s*사\s*명|회사명)[\s:：]*([가-힣()]{2,30})`,
	),
	ProductName: compile(
		`(?i)(?:품\s*명|품명|제\s*품\s*명|제품명)[\s:：]*([가-힣]{1,20})`,
	),
	TransactionType: compile(
		`(?i)(?:구\s*분)[\s:：]*(입고|출고)`,
		`(?i)(입고|출고)`,
	),
	MeasurementID: compile(
		`(?i)(?:계량\s*횟수|ID-NO)[\s:：]*(\d{4,10})`,
		`(?i)(?:NO|번호)[\s:：]*(\d{4,10})`,
	),
	Location: compile(
		`(?i)\(주\)\s*([가-힣\s]{2,20})`,
		`(?i)([가-힣]{2,10}(?:환경|바이오|리사이클링|C&S)(?:\(주\))?)`,
	),
}

// DefaultRegistry returns the shared pattern registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func compile(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(expr))
	}
	return compiled
}
