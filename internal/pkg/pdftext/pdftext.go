// Package pdftext extracts plain text from PDF files.
package pdftext

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages caps how many pages are read from a single document
const DefaultMaxPages = 25

// Extractor reads plain text out of a document on disk
type Extractor interface {
	Extract(path string, maxPages int) (string, error)
}

// PDFExtractor extracts text with github.com/ledongthuc/pdf
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the text of the first maxPages pages. The words of a page
// are joined by a single space and every page is followed by a newline.
func (e *PDFExtractor) Extract(path string, maxPages int) (text string, err error) {
	// the parser panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	pages := r.NumPage()
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if pages > maxPages {
		pages = maxPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if !page.V.IsNull() {
			b.WriteString(strings.Join(pageWords(page.Content().Text), " "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// wordGap is the horizontal gap, relative to the font size, past which two
// glyphs on the same line belong to different words.
const wordGap = 0.2

// pageWords merges the per-glyph items of a page into words. A new word starts
// at whitespace, on a line change, or where the pen jumps horizontally.
func pageWords(glyphs []pdf.Text) []string {
	var run strings.Builder
	for i, g := range glyphs {
		if i > 0 && breaksWord(glyphs[i-1], g) {
			run.WriteByte(' ')
		}
		run.WriteString(g.S)
	}
	return strings.Fields(run.String())
}

func breaksWord(prev, next pdf.Text) bool {
	if math.Abs(next.Y-prev.Y) > 0.5 {
		return true
	}
	gap := next.X - (prev.X + prev.W)
	size := next.FontSize
	if size <= 0 {
		size = 1
	}
	return gap > wordGap*size || gap < -wordGap*size
}
