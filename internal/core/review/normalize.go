package review

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	ssePrefix = "data:"
	doneToken = "[DONE]"

	// Placeholder is returned when nothing displayable could be extracted.
	Placeholder = "Unable to parse the review response."
)

// Recognizer claims a response body it understands and returns the
// extracted content, or declines with ok=false.
type Recognizer struct {
	Name  string
	Match func(body string) (content string, ok bool)
}

// Recognizer names, reported in Result.Shape.
const (
	ShapeJSON    = "json"
	ShapePlain   = "plain"
	ShapeSSE     = "sse"
	ShapeCleanup = "cleanup"
	ShapeNone    = "none"
)

// DefaultRecognizers is the fallback ladder used by Normalize. Order matters:
// the first recognizer to claim the body wins.
var DefaultRecognizers = []Recognizer{
	{Name: ShapeJSON, Match: matchJSONBody},
	{Name: ShapePlain, Match: matchPlainText},
	{Name: ShapeSSE, Match: matchSSEChunks},
	{Name: ShapeCleanup, Match: matchCleanup},
}

var (
	// bodyPaths are checked, in order, when the whole body is one JSON value.
	bodyPaths = []string{
		"content",
		"message",
		"text",
		"choices.0.message.content",
		"choices.0.text",
	}

	// chunkPaths are checked, in order, for each JSON payload of a data: line.
	chunkPaths = []string{
		"choices.0.delta.content",
		"choices.0.message.content",
		"choices.0.text",
		"choices.0",
		"content",
		"message",
		"text",
	}
)

// Normalize converts a raw response body into a single displayable string.
// It never fails; unusable input yields Placeholder.
func Normalize(body string) string {
	content, _ := NormalizeWith(body, DefaultRecognizers...)
	return content
}

// NormalizeWith runs body through recognizers in order and returns the first
// claimed content along with the name of the recognizer that claimed it.
func NormalizeWith(body string, recognizers ...Recognizer) (string, string) {
	if strings.TrimSpace(body) == "" {
		return Placeholder, ShapeNone
	}

	for _, r := range recognizers {
		if content, ok := r.Match(body); ok {
			return content, r.Name
		}
	}

	return Placeholder, ShapeNone
}

func matchJSONBody(body string) (string, bool) {
	if !gjson.Valid(body) {
		return "", false
	}

	doc := gjson.Parse(body)
	if s := firstString(doc, bodyPaths); s != "" {
		return s, true
	}
	return "", false
}

func matchPlainText(body string) (string, bool) {
	if strings.Contains(body, ssePrefix) {
		return "", false
	}
	return body, true
}

func matchSSEChunks(body string) (string, bool) {
	var b strings.Builder

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, ssePrefix) {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, ssePrefix))
		if payload == "" || payload == doneToken {
			continue
		}

		b.WriteString(chunkText(payload))
	}

	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func matchCleanup(body string) (string, bool) {
	cleaned := strings.ReplaceAll(body, ssePrefix, "")
	cleaned = strings.ReplaceAll(cleaned, doneToken, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}

// chunkText extracts the text carried by one data: payload. Payloads that
// are not JSON are used verbatim.
func chunkText(payload string) string {
	if !gjson.Valid(payload) {
		return payload
	}

	doc := gjson.Parse(payload)
	if s := firstString(doc, chunkPaths); s != "" {
		return s
	}
	if doc.Type == gjson.String {
		return doc.Str
	}
	return ""
}

// firstString returns the first non-empty string value found at paths.
func firstString(doc gjson.Result, paths []string) string {
	for _, p := range paths {
		v := doc.Get(p)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
