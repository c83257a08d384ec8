package jsoncolor

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestColorize_JSONBody(t *testing.T) {
	got := ansi.Strip(Colorize(`{"content":"Looks good","score":42,"ok":true,"meta":null}`))

	assert.Contains(t, got, `"content": "Looks good"`)
	assert.Contains(t, got, `"score": 42`)
	assert.Contains(t, got, `"ok": true`)
	assert.Contains(t, got, `"meta": null`)
	assert.Contains(t, got, "\n", "expected multi-line output")
}

func TestColorize_SSEFrames(t *testing.T) {
	raw := "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n\ndata: [DONE]\n"

	got := ansi.Strip(Colorize(raw))

	assert.Equal(t, raw, got, "layout of stream frames is preserved")
}

func TestColorize_PlainText(t *testing.T) {
	assert.Equal(t, "not json at all", Colorize("not json at all"))
}

func TestColorize_InvalidFramePayload(t *testing.T) {
	raw := "data: {broken\ndata: \"ok\""
	assert.Equal(t, raw, ansi.Strip(Colorize(raw)))
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"escaped strings", `{"msg":"hello \"world\""}`},
		{"numbers", `{"int":42,"float":3.14,"neg":-1,"exp":1e10}`},
		{"literals", `{"t":true,"f":false,"n":null}`},
		{"nested", `{"outer":{"inner":["a","b"]}}`},
		{"empty", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, ansi.Strip(Tokens(tt.input)))
		})
	}
}
