package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"academy-backend/internal/domains/course/model"
	"academy-backend/internal/shared/authz"
)

const (
	excelSheetName   = "Courses"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	excelHeaderFill  = "28A745"
	excelDateTime    = "02/01/2006 15:04"
	exportDate       = "02/01/2006"

	pdfFilename    = "catalog.pdf"
	pdfContentType = "application/pdf"
	pdfTitle       = "Academy Course Catalog"
	pdfNameRunes   = 32
	pdfDescRunes   = 52
)

// pdfCompress is switched off in tests to read the content stream
var pdfCompress = true

var excelColumns = []struct {
	Header string
	Width  float64
}{
	{"ID", 8},
	{"Name", 40},
	{"Description", 60},
	{"Price", 14},
	{"Capacity", 10},
	{"Start date", 12},
	{"End date", 12},
	{"Created at", 18},
}

// pdfColumns is the same column set as the workbook minus "Created at".
// Widths add up to the 277mm of a landscape A4 page inside 10mm margins.
var pdfColumns = []struct {
	Header string
	Width  float64
	Align  string
}{
	{"ID", 14, "C"},
	{"Name", 62, "L"},
	{"Description", 91, "L"},
	{"Price (€)", 30, "R"},
	{"Capacity", 20, "C"},
	{"Start date", 30, "C"},
	{"End date", 30, "C"},
}

// ExportExcel renders every course, newest first, into an XLSX workbook
func (s *CourseService) ExportExcel(ctx context.Context, actor *authz.Actor) (*ExportFile, error) {
	if err := authz.Authorize(actor, authz.ActionExport); err != nil {
		return nil, err
	}

	courses, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courses for export: %w", err)
	}

	data, err := buildCoursesWorkbook(courses)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("courses_%s.xlsx", s.now().Format("2006-01-02_150405")),
		ContentType: excelContentType,
		Data:        data,
	}, nil
}

func buildCoursesWorkbook(courses []model.Course) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// 1. Rename default sheet
	if err := f.SetSheetName("Sheet1", excelSheetName); err != nil {
		return nil, err
	}

	// 2. Header row
	for colIdx, col := range excelColumns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(excelSheetName, cell, col.Header); err != nil {
			return nil, err
		}

		name, _ := excelize.ColumnNumberToName(colIdx + 1)
		if err := f.SetColWidth(excelSheetName, name, name, col.Width); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  12,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{excelHeaderFill},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(excelColumns), 1)
	if err := f.SetCellStyle(excelSheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	// 3. Data rows start at row 2
	for i, c := range courses {
		row := []interface{}{
			c.ID,
			c.Name,
			c.DescriptionOrPlaceholder(),
			model.FormatPrice(c.Price),
			c.Capacity,
			c.StartDate.Format(exportDate),
			c.EndDate.Format(exportDate),
			c.CreatedAt.Format(excelDateTime),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(excelSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the public course catalog
func (s *CourseService) ExportPDF(ctx context.Context, actor *authz.Actor) (*ExportFile, error) {
	if err := authz.Authorize(actor, authz.ActionExport); err != nil {
		return nil, err
	}

	courses, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courses for export: %w", err)
	}

	data, err := buildCatalogPDF(courses, s.now().Format(excelDateTime))
	if err != nil {
		return nil, fmt.Errorf("failed to build pdf: %w", err)
	}

	return &ExportFile{
		Filename:    pdfFilename,
		ContentType: pdfContentType,
		Data:        data,
	}, nil
}

func buildCatalogPDF(courses []model.Course, generatedAt string) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetCompression(pdfCompress)
	// core fonts are cp1252; the translator maps "€" and accented names
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(pdfTitle, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(pdfTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Generated "+generatedAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(40, 167, 69)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.Width, 8, tr(col.Header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, c := range courses {
		cells := []string{
			fmt.Sprintf("%d", c.ID),
			truncateRunes(c.Name, pdfNameRunes),
			truncateRunes(c.DescriptionOrPlaceholder(), pdfDescRunes),
			model.FormatPrice(c.Price),
			fmt.Sprintf("%d", c.Capacity),
			c.StartDate.Format(exportDate),
			c.EndDate.Format(exportDate),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.Width, 7, tr(cells[i]), "1", 0, col.Align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(courses) == 0 {
		pdf.CellFormat(0, 8, "No courses available", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
