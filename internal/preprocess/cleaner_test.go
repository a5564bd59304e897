package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weighworks/weighbridge-parser/internal/common"
)

func TestDecodePayloadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"총중량: 12,480 kg"`, "총중량: 12,480 kg"},
		{"text field", `{"text": "hello"}`, "hello"},
		{"pages text", `{"pages": [{"text": "page one"}]}`, "page one"},
		{"pages lines", `{"pages": [{"lines": [{"text": "line1"}, {"text": "line2"}]}]}`, "line1\nline2"},
		{"pages words", `{"pages": [{"words": [{"text": "w1"}, {"text": "w2"}]}]}`, "w1 w2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestDecodePayloadEmptySpanArraysAreRecognized(t *testing.T) {
	// A present lines/words key with an empty array is a recognized shape
	// yielding empty text; the item then fails completeness checks downstream
	// instead of being rejected as an unknown format.
	for _, raw := range []string{`{"pages": [{"lines": []}]}`, `{"pages": [{"words": []}]}`} {
		got, err := DecodePayload([]byte(raw))
		require.NoError(t, err, "raw=%s", raw)
		assert.Empty(t, got.Text)
	}
}

func TestDecodePayloadTextWinsOverPages(t *testing.T) {
	got, err := DecodePayload([]byte(`{"text": "top", "pages": [{"text": "page"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "top", got.Text)
}

func TestDecodePayloadConfidence(t *testing.T) {
	got, err := DecodePayload([]byte(`{"text": "x", "confidence": 0.93}`))
	require.NoError(t, err)
	require.NotNil(t, got.Confidence)
	assert.InDelta(t, 0.93, *got.Confidence, 1e-9)

	got, err = DecodePayload([]byte(`{"pages": [{"text": "x", "confidence": 0.5}]}`))
	require.NoError(t, err)
	require.NotNil(t, got.Confidence)
	assert.InDelta(t, 0.5, *got.Confidence, 1e-9)
}

func TestDecodePayloadUnrecognizedShape(t *testing.T) {
	for _, raw := range []string{`{"foo": 1}`, `{"pages": []}`, `[1, 2]`, `not json`} {
		_, err := DecodePayload([]byte(raw))
		require.Error(t, err, "raw=%s", raw)
		var formatErr *common.FormatError
		assert.ErrorAs(t, err, &formatErr)
		assert.ErrorIs(t, err, common.ErrUnrecognizedPayload)
	}
}

func TestCleanTextWhitespace(t *testing.T) {
	c := NewCleaner(nil)

	in := "총중량:   12,480 kg\t\t측정\n\n\n차중량: 7,470 kg\n  실중량: 5,010 kg  "
	want := "총중량: 12,480 kg 측정\n차중량: 7,470 kg\n실중량: 5,010 kg"
	assert.Equal(t, want, c.CleanText(in))
}

func TestCleanTextIdempotent(t *testing.T) {
	c := NewCleaner(nil)

	inputs := []string{
		"a  b\n\n\nc",
		"　ｆｕｌｌ　ｗｉｄｔｈ　",
		"총 중 량 : 12,480 kg\n- ~ ·\nend",
	}
	for _, in := range inputs {
		once := c.CleanText(in)
		assert.Equal(t, once, c.CleanText(once))
	}
}

func TestCleanTextFoldsCompatibilityForms(t *testing.T) {
	c := NewCleaner(nil)

	// Full-width digits and colon fold to their ASCII forms.
	assert.Equal(t, "12:30", c.CleanText("１２：３０"))
}

func TestCleanTextDropsIsolatedNoise(t *testing.T) {
	c := NewCleaner(nil)

	in := "실중량: 5,010 kg - 측정\n· ~ -\nok"
	got := c.CleanText(in)
	assert.Equal(t, "실중량: 5,010 kg 측정\nok", got)
	// Dashes attached to content survive.
	assert.Contains(t, c.CleanText("2026-02-02"), "2026-02-02")
}

func TestCompactLabels(t *testing.T) {
	assert.Equal(t, "총중량: 12,480 kg", CompactLabels("총 중 량: 12,480 kg"))
	assert.Equal(t, "차량번호: 1234", CompactLabels("차 량 번 호: 1234"))
	assert.Equal(t, "공차중량", CompactLabels("공 차 중 량"))

	// Idempotent over already compact labels.
	once := CompactLabels("총 중 량 공 차 중 량 실 중 량")
	assert.Equal(t, once, CompactLabels(once))
}

func TestCleanPayloadEndToEnd(t *testing.T) {
	c := NewCleaner(nil)

	raw := []byte(`{"pages": [{"text": "총중량:  12,480   kg\n\n\n차중량: 7,470 kg"}]}`)
	text, confidence, err := c.Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, "총중량: 12,480 kg\n차중량: 7,470 kg", text)
	assert.Nil(t, confidence)
}

func TestHeuristicConfidence(t *testing.T) {
	assert.InDelta(t, 0.2, HeuristicConfidence("garbage"), 1e-9)

	rich := "계량일자: 2026-02-02\n총중량: 12,480 kg\n차중량: 7,470 kg\n실중량: 5,010 kg\n차량번호: 서울82가1234\n거래처: 테스트"
	score := HeuristicConfidence(rich)
	assert.Greater(t, score, 0.7)
	assert.LessOrEqual(t, score, 1.0)
}
