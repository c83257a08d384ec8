// Package jsoncolor highlights raw review responses for the debug panel.
package jsoncolor

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/hay-kot/coderev/internal/core/styles"
)

const dataPrefix = "data:"

// Colorize highlights a raw response body. A whole JSON body is
// pretty-printed. Otherwise each "data:" line with a JSON payload is
// highlighted in place and every other line is returned unchanged.
func Colorize(raw string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" && gjson.Valid(trimmed) {
		indented := pretty.Pretty([]byte(trimmed))
		return strings.TrimRight(Tokens(string(indented)), "\n")
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, dataPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(trimmed, dataPrefix))
		if payload == "" || !gjson.Valid(payload) {
			continue
		}
		lines[i] = styles.JSONPunctStyle.Render(dataPrefix) + " " + Tokens(payload)
	}
	return strings.Join(lines, "\n")
}

// Tokens styles each JSON token of s without changing its layout. s should
// be valid JSON; anything unrecognized is copied through.
func Tokens(s string) string {
	var out strings.Builder

	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '"':
			end := stringEnd(s, i)
			str := s[i : end+1]
			if rest := strings.TrimLeft(s[end+1:], " \t"); strings.HasPrefix(rest, ":") {
				out.WriteString(styles.JSONKeyStyle.Render(str))
			} else {
				out.WriteString(styles.JSONStringStyle.Render(str))
			}
			i = end + 1

		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := i + 1
			for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
				end++
			}
			out.WriteString(styles.JSONNumberStyle.Render(s[i:end]))
			i = end

		case strings.HasPrefix(s[i:], "true"):
			out.WriteString(styles.JSONLiteralStyle.Render("true"))
			i += 4

		case strings.HasPrefix(s[i:], "false"):
			out.WriteString(styles.JSONLiteralStyle.Render("false"))
			i += 5

		case strings.HasPrefix(s[i:], "null"):
			out.WriteString(styles.JSONNullStyle.Render("null"))
			i += 4

		case strings.IndexByte("{}[]:,", ch) >= 0:
			out.WriteString(styles.JSONPunctStyle.Render(string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// stringEnd returns the index of the quote closing the JSON string that
// starts at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
