// Package textextractor converts uploaded resume files (PDF, DOCX, plain
// text) into clean plain text.
package textextractor

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/sarensabesk/HireAI/internal/domain"
	"github.com/sarensabesk/HireAI/pkg/textx"
)

// Extractor implements domain.TextExtractor. Content type is sniffed from
// the payload, never trusted from the filename alone.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

var xmlTagRe = regexp.MustCompile(`<[^>]*>`)

func (e *Extractor) Extract(_ domain.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file %q", domain.ErrInvalidArgument, filename)
	}

	mt := mimetype.Detect(data)
	var (
		text string
		err  error
	)
	switch {
	case mt.Is("application/pdf"):
		text, err = extractPDF(data)
	case mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		text, err = extractDocx(data)
	case strings.HasPrefix(mt.String(), "text/"):
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %q is not valid UTF-8", domain.ErrInvalidArgument, filename)
		}
		text = textx.SanitizeText(string(data))
	default:
		return "", fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalidArgument, mt.String())
	}
	if err != nil {
		return "", fmt.Errorf("op=extract file=%q: %w", filename, err)
	}

	text = textx.CleanDocumentText(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text content in %q", domain.ErrInvalidArgument, filename)
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document XML; strip markup to plain text.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return xmlTagRe.ReplaceAllString(content, ""), nil
}
