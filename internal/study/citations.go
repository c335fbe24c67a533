package study

import (
	"sort"
	"strings"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

// FindCitations ranks pages by keyword overlap with the query and returns
// the best snippets as evidence. Scoring counts each keyword at most once
// per page; ties break toward earlier pages so the ordering is
// reproducible. A query with no matches yields an empty slice, not an
// error.
func FindCitations(query string, pages []string, topK, snippetLen int) []model.Citation {
	if topK <= 0 {
		topK = 3
	}
	if snippetLen <= 0 {
		snippetLen = 200
	}

	queryWords := keywords(query)
	if len(queryWords) == 0 {
		return nil
	}

	type scoredPage struct {
		page  int // 1-indexed
		score int
	}
	var scored []scoredPage
	for i, text := range pages {
		lower := strings.ToLower(text)
		score := 0
		for _, word := range queryWords {
			if strings.Contains(lower, word) {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, scoredPage{page: i + 1, score: score})
		}
	}
	if len(scored) == 0 {
		return nil
	}

	sort.Slice(scored, func(a, b int) bool {
		if scored[a].score != scored[b].score {
			return scored[a].score > scored[b].score
		}
		return scored[a].page < scored[b].page
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	citations := make([]model.Citation, 0, len(scored))
	for _, sp := range scored {
		snippet := extractSnippet(pages[sp.page-1], queryWords, snippetLen)
		if snippet == "" {
			continue
		}
		citations = append(citations, model.Citation{
			Page:    sp.page,
			Snippet: snippet,
		})
	}
	return citations
}

// extractSnippet returns the sentence surrounding the first keyword match,
// clipped to maxLen. When sentence boundaries cannot be found it falls back
// to a fixed window around the match.
func extractSnippet(pageText string, queryWords []string, maxLen int) string {
	lower := strings.ToLower(pageText)

	matchPos := -1
	for _, word := range queryWords {
		if pos := strings.Index(lower, word); pos >= 0 && (matchPos < 0 || pos < matchPos) {
			matchPos = pos
		}
	}
	if matchPos < 0 {
		return ""
	}

	start := matchPos
	for start > 0 && !isSentenceBoundary(pageText[start-1]) {
		start--
	}
	end := matchPos
	for end < len(pageText) && !isSentenceBoundary(pageText[end]) {
		end++
	}

	snippet := strings.TrimSpace(pageText[start:end])
	if snippet == "" {
		// Whole-sentence fallback: a window around the match.
		windowStart := matchPos - maxLen/2
		if windowStart < 0 {
			windowStart = 0
		}
		windowEnd := windowStart + maxLen
		if windowEnd > len(pageText) {
			windowEnd = len(pageText)
		}
		snippet = strings.TrimSpace(pageText[windowStart:windowEnd])
	}

	if len(snippet) > maxLen {
		snippet = truncateRunes(snippet, maxLen-3) + "..."
	}
	return snippet
}

func isSentenceBoundary(c byte) bool {
	return c == '.' || c == '!' || c == '?' || c == '\n'
}
