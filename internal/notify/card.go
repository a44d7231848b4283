// Package notify builds chat notification cards for failed compile checks
// and delivers them to the chat platform's webhook.
package notify

import (
	"fmt"
	"html"

	"github.com/sevigo/build-herald/internal/core"
)

// Payload is the wire format the webhook expects:
// { "cards": [ { "header": {...}, "sections": [ { "widgets": [...] } ] } ] }.
type Payload struct {
	Cards []Card `json:"cards"`
}

// Card is one notification card with an optional header and its sections.
type Card struct {
	Header   *Header   `json:"header,omitempty"`
	Sections []Section `json:"sections"`
}

// Header holds the card title, subtitle, and image reference.
type Header struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Section groups a list of widgets.
type Section struct {
	Widgets []Widget `json:"widgets"`
}

// Widget is a union: exactly one of its fields is set.
type Widget struct {
	TextParagraph *TextParagraph `json:"textParagraph,omitempty"`
	KeyValue      *KeyValue      `json:"keyValue,omitempty"`
}

// TextParagraph renders a block of limited HTML.
type TextParagraph struct {
	Text string `json:"text"`
}

// KeyValue renders a labeled value with an optional link button.
type KeyValue struct {
	TopLabel         string  `json:"topLabel,omitempty"`
	Content          string  `json:"content"`
	ContentMultiline bool    `json:"contentMultiline,omitempty"`
	Button           *Button `json:"button,omitempty"`
}

// Button wraps a text button that opens a link when clicked.
type Button struct {
	TextButton *TextButton `json:"textButton"`
}

// TextButton is the button label plus its click action.
type TextButton struct {
	Text    string  `json:"text"`
	OnClick OnClick `json:"onClick"`
}

// OnClick describes the button's action.
type OnClick struct {
	OpenLink OpenLink `json:"openLink"`
}

// OpenLink is the target URL of a button click.
type OpenLink struct {
	URL string `json:"url"`
}

// FailureInfo carries everything the card builder needs about a failed
// compile check. Entries are expected to be non-empty; callers degrade
// marker-less error text to a single entry before building.
type FailureInfo struct {
	RepoFullName string
	Ref          string
	SourcePath   string
	ImageURL     string
	Entries      []Entry
}

// Entry is one extracted compile error plus the link back to its source
// line. SourceURL is empty when no line number could be extracted.
type Entry struct {
	Line      int
	Message   string
	SourceURL string
}

// BuildFailureCard turns a failed compile check into the webhook's card
// payload: a header naming the repository, an intro paragraph, and one
// key/value widget per error entry with a "View source" link button.
func BuildFailureCard(info FailureInfo) *Payload {
	widgets := []Widget{
		{
			TextParagraph: &TextParagraph{
				Text: fmt.Sprintf("<b>%s</b> failed to compile on <i>%s</i> (%d %s).",
					html.EscapeString(info.SourcePath),
					html.EscapeString(info.Ref),
					len(info.Entries),
					pluralize(len(info.Entries), "error")),
			},
		},
	}

	for _, e := range info.Entries {
		kv := &KeyValue{
			TopLabel:         topLabel(e.Line),
			Content:          html.EscapeString(e.Message),
			ContentMultiline: true,
		}
		if e.SourceURL != "" {
			kv.Button = &Button{
				TextButton: &TextButton{
					Text:    "View source",
					OnClick: OnClick{OpenLink: OpenLink{URL: e.SourceURL}},
				},
			}
		}
		widgets = append(widgets, Widget{KeyValue: kv})
	}

	return &Payload{
		Cards: []Card{
			{
				Header: &Header{
					Title:    "Compile check failed",
					Subtitle: info.RepoFullName,
					ImageURL: info.ImageURL,
				},
				Sections: []Section{{Widgets: widgets}},
			},
		},
	}
}

func topLabel(line int) string {
	if line <= 0 {
		return "Compiler output"
	}
	return fmt.Sprintf("Line %d", line)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// EntriesFromErrors pairs extracted compile errors with source-line URLs
// produced by linkFn. linkFn is only consulted for entries that carry a
// real line number.
func EntriesFromErrors(errs []core.CompileError, linkFn func(line int) string) []Entry {
	entries := make([]Entry, 0, len(errs))
	for _, e := range errs {
		entry := Entry{Line: e.Line, Message: e.Message}
		if e.Line > 0 && linkFn != nil {
			entry.SourceURL = linkFn(e.Line)
		}
		entries = append(entries, entry)
	}
	return entries
}
