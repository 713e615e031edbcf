package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	wrapWidth   = 95
	pageMargin  = 14.0 // mm
	lineHeight  = 5.0
	turnSpacing = 2.0
)

// WrapLines splits text on newlines, then cuts each paragraph every width runes.
func WrapLines(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		runes := []rune(paragraph)
		for len(runes) > 0 {
			n := width
			if len(runes) < n {
				n = len(runes)
			}
			lines = append(lines, string(runes[:n]))
			runes = runes[n:]
		}
	}
	return lines
}

// WritePDF lays out a chat transcript on Letter pages. assistant labels the response lines.
func WritePDF(title, assistant string, rows []Row) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	doc.Ln(4)
	doc.SetFont("Helvetica", "", 10)

	writeBlock := func(text string) {
		for _, line := range WrapLines(text, wrapWidth) {
			doc.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
		}
		doc.Ln(turnSpacing)
	}

	for _, r := range rows {
		ts := r.Timestamp.Format(TimestampLayout)
		writeBlock(fmt.Sprintf("You (%s): %s", ts, r.Message))
		writeBlock(fmt.Sprintf("%s (%s): %s", assistant, ts, r.Response))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
