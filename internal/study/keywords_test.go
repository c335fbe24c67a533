package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords(t *testing.T) {
	got := keywords("What is Newton's first law of motion?")
	assert.Equal(t, []string{"newton", "first", "law", "motion"}, got)
}

func TestKeywords_DropsShortAndStopWords(t *testing.T) {
	got := keywords("the cat sat on a DNA strand and the cat left")
	assert.Equal(t, []string{"cat", "sat", "dna", "strand", "left"}, got)
}

func TestKeywords_Empty(t *testing.T) {
	assert.Empty(t, keywords(""))
	assert.Empty(t, keywords("is of in to"))
	assert.Empty(t, keywords("a b c"))
}

func TestKeywordOverlap(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
		min  float64
		max  float64
	}{
		{
			name: "full overlap",
			got:  "An object stays at rest unless a force acts on it",
			want: "Objects remain at rest unless acted on by a force",
			min:  0.5, max: 1,
		},
		{
			name: "no overlap",
			got:  "photosynthesis in plants",
			want: "supply and demand curves",
			min:  0, max: 0,
		},
		{
			name: "empty canonical",
			got:  "anything",
			want: "",
			min:  0, max: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlap := keywordOverlap(tt.got, tt.want)
			assert.GreaterOrEqual(t, overlap, tt.min)
			assert.LessOrEqual(t, overlap, tt.max)
		})
	}
}

func TestKeywordOverlap_Substring(t *testing.T) {
	// Containment is substring based, so inflected forms still count.
	overlap := keywordOverlap("the forces acting here", "force")
	assert.Equal(t, 1.0, overlap)
}
