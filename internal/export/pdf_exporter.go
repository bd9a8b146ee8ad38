package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DateLayout matches the date format shown elsewhere in the client.
const DateLayout = "02-01-2006 at 15:04"

// Summary is what gets printed: a titled summary and where it came from.
type Summary struct {
	Title  string
	Date   time.Time
	Source string
	Text   string
	Author string
}

// PDFExporter renders summaries into a single-column A4 PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF bytes for s.
func (e *PDFExporter) Render(s Summary) ([]byte, error) {
	if s.Text == "" {
		return nil, fmt.Errorf("pdf requires summary text")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(s.Title, true)
	if s.Author != "" {
		pdf.SetAuthor(s.Author, true)
	}
	pdf.AddPage()

	title := s.Title
	if title == "" {
		title = "Summary"
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "C", false)
	pdf.Ln(2)

	if !s.Date.IsZero() {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 6, s.Date.Format(DateLayout), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(s.Text), "", "J", false)

	if s.Source != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Source", "B", 1, "", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(s.Source), "", "", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders s and writes it to path, creating parent directories.
func (e *PDFExporter) WriteFile(path string, s Summary) error {
	data, err := e.Render(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
