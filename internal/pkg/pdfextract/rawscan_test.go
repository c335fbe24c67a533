package pdfextract

import (
	"bytes"
	"compress/zlib"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentStream(body string) []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n4 0 obj\n<< /Length 99 >>\nstream\n")
	b.WriteString(body)
	b.WriteString("\nendstream\nendobj\n%%EOF")
	return b.Bytes()
}

func TestRawScan_UncompressedStream(t *testing.T) {
	data := contentStream("BT /F1 12 Tf (Newton's laws of motion hold in inertial frames) Tj ET")

	pages, err := (&RawScanExtractor{}).Extract(data)
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "Newton's laws of motion")
}

func TestRawScan_DeflatedStream(t *testing.T) {
	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	_, err := w.Write([]byte("BT (Compressed text survives the inflate step) Tj ET"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\nstream\n")
	b.Write(compressed.Bytes())
	b.WriteString("endstream\n%%EOF")

	pages, err := (&RawScanExtractor{}).Extract(b.Bytes())
	require.NoError(t, err)
	assert.Contains(t, pages[0], "Compressed text survives")
}

func TestRawScan_TJArray(t *testing.T) {
	data := contentStream("BT [(Hello) -250 (world)] TJ ET")

	pages, err := (&RawScanExtractor{}).Extract(data)
	require.NoError(t, err)
	assert.Contains(t, pages[0], "Hello")
	assert.Contains(t, pages[0], "world")
}

func TestRawScan_EscapedParentheses(t *testing.T) {
	data := contentStream(`BT (f\(x\) = 2x) Tj ET`)

	pages, err := (&RawScanExtractor{}).Extract(data)
	require.NoError(t, err)
	assert.Contains(t, pages[0], "f(x) = 2x")
}

func TestRawScan_IgnoresNonTextStreams(t *testing.T) {
	data := contentStream("BT (shown) Tj (positioned only) Td ET")

	pages, err := (&RawScanExtractor{}).Extract(data)
	require.NoError(t, err)
	assert.Contains(t, pages[0], "shown")
	assert.NotContains(t, pages[0], "positioned only")
}

func TestRawScan_NoText(t *testing.T) {
	_, err := (&RawScanExtractor{}).Extract([]byte("no streams here at all"))
	require.Error(t, err)

	_, err = (&RawScanExtractor{}).Extract(contentStream("q 1 0 0 1 0 0 cm Q"))
	require.Error(t, err)
}

func TestExtract_SalvagesHandcraftedStream(t *testing.T) {
	// Broken enough for the structured readers, salvageable by the raw scan.
	data := contentStream("BT (This handcrafted stream carries plenty of recoverable text for one page) Tj ET")

	result, err := Extract(data)
	require.NoError(t, err)

	assert.Equal(t, "rawscan", result.Method)
	assert.False(t, result.Scanned)
	require.Len(t, result.Pages, 1)
	assert.True(t, strings.Contains(result.Pages[0], "recoverable text"))
}
