package pdfextract

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
)

// RawScanExtractor is the last resort: it ignores the cross-reference table
// entirely, inflates every stream object it can find, and collects string
// literals fed to the Tj/TJ text-showing operators. Output quality is poor
// (one page, approximate ordering) but it salvages files the structured
// parsers refuse.
type RawScanExtractor struct{}

func (e *RawScanExtractor) Name() string { return "rawscan" }

var (
	streamMarker    = []byte("stream")
	endStreamMarker = []byte("endstream")
)

func (e *RawScanExtractor) Extract(data []byte) ([]string, error) {
	var collected strings.Builder

	for offset := 0; offset < len(data); {
		idx := bytes.Index(data[offset:], streamMarker)
		if idx < 0 {
			break
		}
		start := offset + idx + len(streamMarker)
		// The stream keyword is followed by CRLF or LF before the payload.
		if start < len(data) && data[start] == '\r' {
			start++
		}
		if start < len(data) && data[start] == '\n' {
			start++
		}
		endIdx := bytes.Index(data[start:], endStreamMarker)
		if endIdx < 0 {
			break
		}
		payload := data[start : start+endIdx]
		offset = start + endIdx + len(endStreamMarker)

		content := inflate(payload)
		if content == nil {
			content = payload
		}
		// Only content streams contain text blocks.
		if !bytes.Contains(content, []byte("BT")) {
			continue
		}
		appendTextOperands(&collected, content)
	}

	text := strings.TrimSpace(collected.String())
	if text == "" {
		return nil, fmt.Errorf("no text operators found")
	}
	return []string{text}, nil
}

func inflate(payload []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil && len(out) == 0 {
		return nil
	}
	return out
}

// appendTextOperands walks a content stream and gathers the parenthesized
// string literals that precede Tj and TJ operators.
func appendTextOperands(out *strings.Builder, content []byte) {
	for i := 0; i < len(content); i++ {
		if content[i] != '(' {
			continue
		}
		literal, next := readStringLiteral(content, i)
		if next < 0 {
			return
		}
		if followedByTextOperator(content, next) {
			out.WriteString(literal)
			out.WriteByte(' ')
		}
		i = next - 1
	}
}

// readStringLiteral reads a balanced ( ... ) literal starting at open,
// unescaping the PDF escape sequences. It returns the literal and the index
// just past the closing parenthesis, or -1 when unbalanced.
func readStringLiteral(content []byte, open int) (string, int) {
	var b strings.Builder
	depth := 0
	for i := open; i < len(content); i++ {
		c := content[i]
		switch c {
		case '\\':
			if i+1 >= len(content) {
				return "", -1
			}
			i++
			switch content[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r', 'f', 'b':
				b.WriteByte(' ')
			default:
				b.WriteByte(content[i])
			}
		case '(':
			depth++
			if depth > 1 {
				b.WriteByte(c)
			}
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return "", -1
}

// followedByTextOperator reports whether the next operator after pos shows
// text: Tj, ', " directly, or TJ after the enclosing array closes. Sibling
// literals and kerning numbers inside a TJ array are skipped over.
func followedByTextOperator(content []byte, pos int) bool {
	for i := pos; i < len(content); i++ {
		c := content[i]
		switch {
		case c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == ']' || c == '-' || (c >= '0' && c <= '9') || c == '.':
			continue
		case c == '(':
			_, next := readStringLiteral(content, i)
			if next < 0 {
				return false
			}
			i = next - 1
		case c == 'T' && i+1 < len(content) && (content[i+1] == 'j' || content[i+1] == 'J'):
			return true
		case c == '\'' || c == '"':
			return true
		default:
			return false
		}
	}
	return false
}
