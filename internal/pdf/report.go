// Package pdf renders the task list export. The writer streams straight
// into the HTTP response, nothing is stored on disk.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskmanager/internal/models"
)

// Generator renders task reports (interface so handlers can be tested
// without gofpdf).
type Generator interface {
	TaskList(w io.Writer, tasks []models.Task, generatedAt time.Time) error
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

func (g *ReportGenerator) TaskList(w io.Writer, tasks []models.Task, generatedAt time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Tasks", false)
	pdf.SetAuthor("Task Manager", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Tasks", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{15, 75, 45, 55, 55, 22}
	headers := []string{"ID", "Name", "Status", "Creator", "Executor", "Created"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range tasks {
		executor := t.ExecutorName
		if executor == "" {
			executor = "-"
		}
		cells := []string{
			fmt.Sprintf("%d", t.ID),
			t.Name,
			t.StatusName,
			t.CreatorName,
			executor,
			t.CreatedAt.Format("02.01.2006"),
		}
		for i, v := range cells {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(tasks) == 0 {
		pdf.CellFormat(0, 8, "No tasks match the current filter.", "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
