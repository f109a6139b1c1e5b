package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/domains/course/model"
)

func uncompressedCatalog(t *testing.T, courses []model.Course) string {
	t.Helper()
	pdfCompress = false
	t.Cleanup(func() { pdfCompress = true })

	data, err := buildCatalogPDF(courses, "15/10/2026 10:00")
	require.NoError(t, err)
	return string(data)
}

func TestCatalogPDFColumns(t *testing.T) {
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := uncompressedCatalog(t, []model.Course{{
		ID:        42,
		Name:      "ML 101",
		Price:     decimal.RequireFromString("1234.56"),
		Capacity:  30,
		StartDate: start,
		EndDate:   start.AddDate(0, 2, 0),
	}})

	for _, header := range []string{"ID", "Name", "Description", "Capacity", "Start date", "End date"} {
		assert.Contains(t, doc, "("+header+") Tj", header)
	}
	assert.NotContains(t, doc, "(Created at) Tj")

	for _, cell := range []string{"42", "ML 101", "No description", "30", "01/01/2030", "01/03/2030"} {
		assert.Contains(t, doc, "("+cell+") Tj", cell)
	}
	assert.Contains(t, doc, "(1.234,56 ")

	// landscape A4
	assert.Contains(t, doc, "/MediaBox [0 0 841.89 595.28]")
}

func TestCatalogPDFTruncatesLongText(t *testing.T) {
	desc := strings.Repeat("d", 200)
	doc := uncompressedCatalog(t, []model.Course{{
		ID:          1,
		Name:        strings.Repeat("n", 100),
		Description: &desc,
		Price:       decimal.RequireFromString("10"),
	}})

	assert.NotContains(t, doc, strings.Repeat("n", pdfNameRunes+1))
	assert.NotContains(t, doc, strings.Repeat("d", pdfDescRunes+1))
	assert.Contains(t, doc, strings.Repeat("d", pdfDescRunes-3))
}

func TestPDFColumnsFitLandscapePage(t *testing.T) {
	var total float64
	for _, col := range pdfColumns {
		total += col.Width
	}
	// 297mm page minus 10mm margins
	assert.InDelta(t, 277, total, 0.01)
	assert.Len(t, pdfColumns, len(excelColumns)-1)
}
