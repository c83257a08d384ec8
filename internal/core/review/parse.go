package review

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ParseResult normalizes body and, when the body is a structured review
// object ({status, message, suggestions, score}), fills the structured
// fields as well. Structured objects are recognized whatever shape the
// normalizer reports, so an empty or missing message still yields the
// verdict, score and suggestions instead of the raw JSON.
func ParseResult(body string) Result {
	content, shape := NormalizeWith(body, DefaultRecognizers...)
	res := Result{Content: content, Shape: shape}

	trimmed := strings.TrimSpace(body)
	if !gjson.Valid(trimmed) {
		return res
	}

	doc := gjson.Parse(trimmed)
	if !doc.IsObject() {
		return res
	}
	suggestions := doc.Get("suggestions")
	score := doc.Get("score")
	status := Status(doc.Get("status").String())

	if !suggestions.IsArray() && score.Type != gjson.Number && status != StatusSuccess && status != StatusFailed {
		return res
	}

	switch status {
	case StatusSuccess, StatusFailed:
		res.Status = status
	}

	if msg := doc.Get("message"); msg.Type == gjson.String {
		res.Message = msg.Str
	}

	for _, s := range suggestions.Array() {
		if s.Type == gjson.String && s.Str != "" {
			res.Suggestions = append(res.Suggestions, s.Str)
		}
	}

	if score.Type == gjson.Number {
		v := int(score.Int())
		res.Score = &v
	}

	if shape != ShapeJSON {
		res.Content = res.Message
		res.Shape = ShapeJSON
	}

	return res
}
