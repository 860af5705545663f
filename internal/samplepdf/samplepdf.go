// Package samplepdf renders small policy documents as PDF. It backs the
// gen-policy command and the fixtures of the extraction tests.
package samplepdf

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// Section is a headed block of body text.
type Section struct {
	Heading string
	Body    string
}

// Document describes the PDF to render.
type Document struct {
	Title    string
	Author   string
	Sections []Section
}

// CompanyPolicy returns the demo policy shipped with gen-policy.
func CompanyPolicy() Document {
	return Document{
		Title:  "Company Policy and Procedures",
		Author: "Human Resources",
		Sections: []Section{
			{
				Heading: "1. Working Hours",
				Body:    "Standard working hours are 9:00 to 17:00, Monday to Friday. Flexible arrangements require written approval from a line manager.",
			},
			{
				Heading: "2. Leave",
				Body:    "Employees accrue 25 days of annual leave per year. Requests must be submitted at least two weeks in advance.",
			},
			{
				Heading: "3. Code of Conduct",
				Body:    "All staff are expected to treat colleagues, customers and partners with respect. Harassment of any kind is not tolerated.",
			},
			{
				Heading: "4. Data Protection",
				Body:    "Customer data may only be accessed for legitimate business purposes and must never leave approved systems.",
			},
		},
	}
}

// Write renders doc as a PDF to w.
func Write(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	if doc.Title != "" {
		pdf.SetTitle(doc.Title, false)
	}
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, false)
	}

	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, doc.Title, "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	for _, s := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, s.Heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, s.Body, "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("samplepdf: rendering: %w", err)
	}
	return nil
}

// WriteFile renders doc to the file at path, replacing any existing file.
func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("samplepdf: creating %s: %w", path, err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
