// Package pdfextract turns raw PDF bytes into per-page plain text.
//
// Extraction runs an ordered chain of strategies: an accurate layout-aware
// pass, a whole-document plain-text pass, and finally a raw content-stream
// scan that tolerates malformed files. The first strategy whose output
// clears the usable-text threshold wins and its output is returned
// unmodified. Ordering trades fidelity for robustness, in that order.
package pdfextract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText means the file is not a readable PDF container, or every
// extraction strategy failed outright.
var ErrNoText = errors.New("unable to extract text from pdf")

// Extractor is one strategy in the fallback chain. Adding a method means
// appending to the chain; the orchestration below never changes.
type Extractor interface {
	Name() string
	Extract(data []byte) ([]string, error)
}

// Result is the outcome of a chain run. Scanned is set when the container
// opened fine but no strategy produced usable text, which is the signature
// of an image-only (scanned) document.
type Result struct {
	Pages   []string
	Scanned bool
	Method  string
}

// usableThreshold is the minimum average count of non-whitespace characters
// per page for an extraction to be accepted.
const usableThreshold = 8

func DefaultChain() []Extractor {
	return []Extractor{
		&LayoutExtractor{},
		&PlainTextExtractor{},
		&RawScanExtractor{},
	}
}

// Extract runs the default chain over the document.
func Extract(data []byte) (*Result, error) {
	return ExtractWithChain(DefaultChain(), data)
}

// ExtractWithChain runs the given strategies in order.
func ExtractWithChain(chain []Extractor, data []byte) (*Result, error) {
	var lastErr error
	allFailed := true

	for _, extractor := range chain {
		pages, err := extractor.Extract(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", extractor.Name(), err)
			continue
		}
		allFailed = false
		if hasUsableText(pages) {
			return &Result{Pages: pages, Method: extractor.Name()}, nil
		}
	}

	// No strategy produced text. If the container still opens with at least
	// one page, report it as scanned rather than failing the caller.
	if pageCount := containerPageCount(data); pageCount > 0 {
		return &Result{
			Pages:   make([]string, pageCount),
			Scanned: true,
		}, nil
	}

	if allFailed && lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoText, lastErr)
	}
	return nil, ErrNoText
}

func hasUsableText(pages []string) bool {
	if len(pages) == 0 {
		return false
	}
	total := 0
	for _, page := range pages {
		for _, r := range page {
			if !isSpaceRune(r) {
				total++
			}
		}
	}
	return total/len(pages) > usableThreshold
}

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func containerPageCount(data []byte) int {
	defer func() { _ = recover() }()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}

func trimPages(pages []string) []string {
	out := make([]string, len(pages))
	for i, page := range pages {
		out[i] = strings.TrimSpace(page)
	}
	return out
}
