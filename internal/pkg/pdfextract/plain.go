package pdfextract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PlainTextExtractor pulls the document's text in one pass. It survives
// files where per-page resource lookup fails, at the cost of page
// boundaries: output is split on form feeds when present, otherwise it is
// a single page.
type PlainTextExtractor struct{}

func (e *PlainTextExtractor) Name() string { return "plain" }

func (e *PlainTextExtractor) Extract(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("plain extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf failed: %w", err)
	}

	plainReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("get plain text failed: %w", err)
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return nil, fmt.Errorf("read plain text failed: %w", err)
	}

	text := string(out)
	if strings.Contains(text, "\f") {
		return trimPages(strings.Split(text, "\f")), nil
	}
	return trimPages([]string{text}), nil
}
