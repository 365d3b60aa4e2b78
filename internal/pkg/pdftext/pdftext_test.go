package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF writes a minimal Helvetica document with one page per content
// stream and returns its path.
func writePDF(t *testing.T, streams ...string) string {
	t.Helper()

	n := len(streams)
	fontObj := 3 + 2*n
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for i, content := range streams {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func line(s string) string {
	return fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", s)
}

func TestExtractSinglePage(t *testing.T) {
	path := writePDF(t, line("Hello World"))

	text, err := NewPDFExtractor().Extract(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", text)
}

func TestExtractJoinsLinesAndCollapsesSpaces(t *testing.T) {
	path := writePDF(t,
		"BT /F1 12 Tf 72 720 Td (Week   one) Tj 0 -14 Td (notes) Tj ET",
		line("second page"),
	)

	text, err := NewPDFExtractor().Extract(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Week one notes\nsecond page\n", text)
}

func TestExtractSeparatesHorizontalRuns(t *testing.T) {
	path := writePDF(t, "BT /F1 12 Tf 72 720 Td (Left) Tj 200 0 Td (Right) Tj ET")

	text, err := NewPDFExtractor().Extract(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Left Right\n", text)
}

func TestExtractPageCap(t *testing.T) {
	streams := make([]string, 30)
	for i := range streams {
		streams[i] = line(fmt.Sprintf("Page %d", i+1))
	}
	path := writePDF(t, streams...)

	var want strings.Builder
	for i := 1; i <= DefaultMaxPages; i++ {
		fmt.Fprintf(&want, "Page %d\n", i)
	}

	text, err := NewPDFExtractor().Extract(path, 0)
	require.NoError(t, err)
	assert.Equal(t, want.String(), text)

	text, err = NewPDFExtractor().Extract(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "Page 1\nPage 2\n", text)
}

func TestPageWords(t *testing.T) {
	glyph := func(s string, x, y float64) pdf.Text {
		return pdf.Text{S: s, X: x, Y: y, W: 6, FontSize: 12}
	}
	glyphs := []pdf.Text{
		glyph("a", 0, 10), glyph("b", 6, 10), glyph(" ", 12, 10), glyph("c", 18, 10),
		glyph("d", 60, 10),
		glyph("e", 0, 0),
	}
	assert.Equal(t, []string{"ab", "c", "d", "e"}, pageWords(glyphs))
	assert.Empty(t, pageWords(nil))
}

func TestExtractMissingFile(t *testing.T) {
	_, err := NewPDFExtractor().Extract(filepath.Join(t.TempDir(), "missing.pdf"), 0)
	assert.Error(t, err)
}

func TestExtractNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o644))

	text, err := NewPDFExtractor().Extract(path, 0)
	assert.Error(t, err)
	assert.Empty(t, text)
}
