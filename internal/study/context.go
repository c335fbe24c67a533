package study

import (
	"fmt"
	"strings"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

// BuildContext concatenates page texts into a prompt context bounded by
// maxChars. A single document gets the whole budget in page order; multiple
// documents each get an equal share (upload order) so one long book cannot
// starve the rest. Content past the budget is dropped, never summarized.
func BuildContext(docs []model.Document, maxChars int) string {
	if maxChars <= 0 || len(docs) == 0 {
		return ""
	}
	if len(docs) == 1 {
		return buildDocumentContext(&docs[0], maxChars, false)
	}

	share := maxChars / len(docs)
	if share == 0 {
		share = 1
	}
	var b strings.Builder
	for i := range docs {
		part := buildDocumentContext(&docs[i], share, true)
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(part)
	}
	return b.String()
}

func buildDocumentContext(doc *model.Document, budget int, withHeader bool) string {
	var b strings.Builder
	if withHeader {
		header := "## " + doc.Filename + "\n"
		if len(header) >= budget {
			return ""
		}
		b.WriteString(header)
	}

	for i, page := range doc.Pages() {
		if strings.TrimSpace(page) == "" {
			continue
		}
		chunk := fmt.Sprintf("[Page %d] %s\n", i+1, strings.TrimSpace(page))
		remaining := budget - b.Len()
		if remaining <= 0 {
			break
		}
		if len(chunk) > remaining {
			// Mid-page truncation keeps earlier pages whole.
			b.WriteString(truncateRunes(chunk, remaining))
			break
		}
		b.WriteString(chunk)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && len(string(runes)) > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
