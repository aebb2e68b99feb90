// Package markdown renders blog post bodies. Posts are stored as markdown
// source; HTML is produced on demand and sanitised before it reaches a page.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// wordsPerMinute drives ReadingMinutes.
const wordsPerMinute = 200

var (
	renderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsDashes,
	})
	extensions = blackfriday.CommonExtensions | blackfriday.HardLineBreak
	ugc        = bluemonday.UGCPolicy()
	strict     = bluemonday.StrictPolicy()
)

// Markdown is a post body. The zero value is an empty document.
type Markdown struct {
	Source string

	html *template.HTML
	text *string
}

// New wraps source.
func New(source string) *Markdown {
	return &Markdown{Source: source}
}

func (m *Markdown) raw() []byte {
	return blackfriday.Run([]byte(m.Source),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(extensions),
	)
}

// HTML returns the sanitised rendering. The result is cached.
func (m *Markdown) HTML() template.HTML {
	if m.html != nil {
		return *m.html
	}
	h := template.HTML(bytes.TrimSpace(ugc.SanitizeBytes(m.raw())))
	m.html = &h
	return h
}

// Text returns the document with all markup removed and whitespace collapsed.
func (m *Markdown) Text() string {
	if m.text != nil {
		return *m.text
	}
	// StrictPolicy keeps entities escaped.
	plain := html.UnescapeString(string(strict.SanitizeBytes(m.raw())))
	s := strings.Join(strings.Fields(plain), " ")
	m.text = &s
	return s
}

// Excerpt returns at most n characters of Text, cut at a word boundary and
// suffixed with an ellipsis when shortened.
func (m *Markdown) Excerpt(n int) string {
	s := m.Text()
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)[:n]
	cut := strings.LastIndexByte(string(r), ' ')
	if cut <= 0 {
		return string(r) + "…"
	}
	return strings.TrimRight(string(r)[:cut], " ,.;:") + "…"
}

// ReadingMinutes estimates reading time, at least one minute.
func (m *Markdown) ReadingMinutes() int {
	words := len(strings.Fields(m.Text()))
	mins := (words + wordsPerMinute - 1) / wordsPerMinute
	if mins < 1 {
		return 1
	}
	return mins
}

func (m *Markdown) reset(src string) {
	m.Source = src
	m.html = nil
	m.text = nil
}

// ScanText implements pgtype.TextScanner.
func (m *Markdown) ScanText(v pgtype.Text) error {
	if !v.Valid {
		m.reset("")
		return nil
	}
	m.reset(v.String)
	return nil
}

// TextValue implements pgtype.TextValuer.
func (m Markdown) TextValue() (pgtype.Text, error) {
	return pgtype.Text{String: m.Source, Valid: true}, nil
}

// MarshalText emits the source, so JSON carries markdown rather than HTML.
func (m Markdown) MarshalText() ([]byte, error) {
	return []byte(m.Source), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Markdown) UnmarshalText(b []byte) error {
	if !utf8.Valid(b) {
		return fmt.Errorf("markdown: invalid utf-8")
	}
	m.reset(string(b))
	return nil
}
