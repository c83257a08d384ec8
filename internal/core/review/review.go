// Package review holds the request and result model for code review
// submissions and the normalizer that turns raw service responses into
// displayable content.
package review

import (
	"fmt"
	"strings"
)

// RoleUser is the only chat role the client sends.
const RoleUser = "user"

// DefaultPrompt is prepended to the submitted code.
const DefaultPrompt = "Please review the following code and provide feedback:\n\n"

// Message is a single chat-style entry in a review request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the JSON body posted to the review service.
type Request struct {
	Messages []Message `json:"messages"`
}

// NewRequest builds a single-message request with the code fenced in
// triple backticks after prompt. lang is an optional fence language tag.
// Returns ErrEmptyCode when code is blank.
func NewRequest(code, prompt, lang string) (Request, error) {
	if strings.TrimSpace(code) == "" {
		return Request{}, ErrEmptyCode
	}

	content := fmt.Sprintf("%s```%s\n%s\n```", prompt, lang, strings.TrimRight(code, "\n"))

	return Request{
		Messages: []Message{
			{Role: RoleUser, Content: content},
		},
	}, nil
}

// Status is the verdict carried by structured review responses.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "error"
)

// Result is the normalized review output. The structured fields are only
// populated when the service answered with a status/message/suggestions
// object; Content then holds the message, which may be empty. Otherwise
// Content is always set.
type Result struct {
	Content     string   `json:"content"`
	Status      Status   `json:"status,omitempty"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Score       *int     `json:"score,omitempty"`

	// Shape names the recognizer that produced Content.
	Shape string `json:"-"`
}

// Structured reports whether the result came from a message/suggestions
// response rather than free-form content.
func (r Result) Structured() bool {
	return len(r.Suggestions) > 0 || r.Score != nil || r.Status != ""
}

// Markdown returns the text to hand to the renderer.
func (r Result) Markdown() string {
	if !r.Structured() {
		return r.Content
	}

	var b strings.Builder
	if r.Status == StatusSuccess {
		b.WriteString("## Review passed\n\n")
	} else {
		b.WriteString("## Needs improvement\n\n")
	}

	if r.Score != nil {
		fmt.Fprintf(&b, "**Score: %d/100**\n\n", *r.Score)
	}

	msg := r.Message
	if msg == "" {
		msg = r.Content
	}
	if msg != "" {
		b.WriteString("### Summary\n\n")
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	if len(r.Suggestions) > 0 {
		b.WriteString("### Suggestions\n\n")
		for _, s := range r.Suggestions {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Outcome is one completed submission: the parsed result plus the raw
// body kept for the debug panel.
type Outcome struct {
	RequestID string `json:"request_id"`
	Result    Result `json:"result"`
	Raw       string `json:"raw,omitempty"`
}
