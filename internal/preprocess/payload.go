package preprocess

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/weighworks/weighbridge-parser/internal/common"
)

// Payload is a decoded raw OCR document: the text to clean plus the
// confidence the OCR engine reported, when it reported one.
type Payload struct {
	Text       string
	Confidence *float64
}

type rawDocument struct {
	Text       *string   `json:"text"`
	Confidence *float64  `json:"confidence"`
	Pages      []rawPage `json:"pages"`
}

// Lines and Words are pointers so a present-but-empty array still counts as
// a recognized shape (yielding empty text) rather than a format error.
type rawPage struct {
	Text       *string    `json:"text"`
	Confidence *float64   `json:"confidence"`
	Lines      *[]rawSpan `json:"lines"`
	Words      *[]rawSpan `json:"words"`
}

type rawSpan struct {
	Text string `json:"text"`
}

// DecodePayload extracts the text content from a raw OCR document. Shapes
// are tried in priority order: a bare JSON string, {text}, {pages:[{text}]},
// {pages:[{lines:[{text}]}]}, {pages:[{words:[{text}]}]}. A document matching
// none of them yields a FormatError.
func DecodePayload(raw []byte) (Payload, error) {
	var plain string
	if err := sonic.Unmarshal(raw, &plain); err == nil {
		return Payload{Text: plain}, nil
	}

	var doc rawDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return Payload{}, common.NewFormatError("payload is neither a JSON object nor a string")
	}

	confidence := doc.Confidence
	if confidence == nil && len(doc.Pages) > 0 {
		confidence = doc.Pages[0].Confidence
	}

	if doc.Text != nil {
		return Payload{Text: *doc.Text, Confidence: confidence}, nil
	}
	if len(doc.Pages) > 0 {
		page := doc.Pages[0]
		if page.Text != nil {
			return Payload{Text: *page.Text, Confidence: confidence}, nil
		}
		if page.Lines != nil {
			parts := make([]string, 0, len(*page.Lines))
			for _, l := range *page.Lines {
				parts = append(parts, l.Text)
			}
			return Payload{Text: strings.Join(parts, "\n"), Confidence: confidence}, nil
		}
		if page.Words != nil {
			parts := make([]string, 0, len(*page.Words))
			for _, w := range *page.Words {
				parts = append(parts, w.Text)
			}
			return Payload{Text: strings.Join(parts, " "), Confidence: confidence}, nil
		}
	}

	return Payload{}, common.NewFormatError("no text, pages[].text, pages[].lines or pages[].words found")
}
