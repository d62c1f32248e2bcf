// Package export renders task lists as json, jsonl snapshots, csv, or pdf.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/ldi/tasker/pkg/models"
)

const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

// Formats lists the accepted values for Write.
var Formats = []string{FormatJSON, FormatJSONL, FormatCSV, FormatPDF}

// Write renders tasks to w in the named format.
func Write(w io.Writer, format string, tasks []*models.Task) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if tasks == nil {
			tasks = []*models.Task{}
		}
		return enc.Encode(tasks)
	case FormatJSONL:
		return WriteSnapshot(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeCSV(w io.Writer, tasks []*models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "description", "due_date", "completed", "priority"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = *t.DueDate
		}
		if err := cw.Write([]string{strconv.Itoa(t.ID), t.Description, due, strconv.FormatBool(t.Completed), t.Priority}); err != nil {
			return fmt.Errorf("failed to write task %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []*models.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)

	// core fonts are cp1252; the check mark has no glyph there
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, t := range tasks {
		line := strings.Replace(t.String(), "[✓]", "[x]", 1)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
