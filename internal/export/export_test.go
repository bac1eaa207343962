package export_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/export"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:         "Balance Sheet",
		Subtitle:      "As of January 31, 2026 — Acme Widgets",
		ColumnHeaders: []string{"Amount"},
		Sections: []domain.ReportSection{
			{
				Title: "Assets",
				Rows: []domain.ReportRow{
					{Label: "Cash", Values: []decimal.Decimal{decimal.NewFromFloat(1234.56)}},
					{Label: "Equipment, tools & misc", Values: []decimal.Decimal{decimal.NewFromInt(-250)}},
					{Label: "Total Assets", Values: []decimal.Decimal{decimal.NewFromFloat(984.56)}, IsTotal: true},
				},
			},
			{
				Title: "Liabilities",
				Rows: []domain.ReportRow{
					{Label: "Loan Payable", Values: []decimal.Decimal{decimal.NewFromInt(1000000)}},
					{Label: "Total Liabilities", Values: []decimal.Decimal{decimal.NewFromInt(1000000)}, IsTotal: true},
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := export.ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, format)

	_, err = export.ParseFormat("docx")
	assert.Error(t, err)
}

func TestGenerateCSV_LayoutAndCurrency(t *testing.T) {
	data, err := export.Generate(sampleReport(), export.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.GreaterOrEqual(t, len(lines), 8)
	assert.Equal(t, "Balance Sheet", lines[0])
	assert.Equal(t, "As of January 31, 2026 — Acme Widgets", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Account,Amount", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Assets", lines[5])

	text := string(data)
	assert.Contains(t, text, `Cash,"$1,234.56"`)
	assert.Contains(t, text, "-$250.00")
	assert.Contains(t, text, `"$1,000,000.00"`)
}

func TestGenerateCSV_CommaLabelRoundTrips(t *testing.T) {
	data, err := export.Generate(sampleReport(), export.FormatCSV)
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	found := false
	for _, record := range records {
		if record[0] == "Equipment, tools & misc" {
			found = true
			assert.Equal(t, "-$250.00", record[1])
		}
	}
	assert.True(t, found, "quoted label did not survive the round trip")
}

func TestGeneratePDF_RendersDocument(t *testing.T) {
	data, err := export.Generate(sampleReport(), export.FormatPDF)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is not a PDF document")
	assert.Equal(t, 1, pdfPageCount(data))
}

func TestGeneratePDF_BreaksAcrossPages(t *testing.T) {
	report := sampleReport()
	var rows []domain.ReportRow
	for i := 0; i < 120; i++ {
		rows = append(rows, domain.ReportRow{
			Label:  fmt.Sprintf("Account %03d", i),
			Values: []decimal.Decimal{decimal.NewFromInt(int64(i))},
		})
	}
	report.Sections = append(report.Sections, domain.ReportSection{Title: "Everything", Rows: rows})

	data, err := export.Generate(report, export.FormatPDF)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pdfPageCount(data), 2, "long report should paginate")
}

// pdfPageCount counts page objects, excluding the page tree root.
func pdfPageCount(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func TestGenerateXLSX_RoundTrips(t *testing.T) {
	data, err := export.Generate(sampleReport(), export.FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Balance Sheet", title)

	header, err := f.GetCellValue("Report", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Account", header)

	// First section: blank row 5, title row 6, first data row 7.
	label, err := f.GetCellValue("Report", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Cash", label)

	value, err := f.GetCellValue("Report", "B7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.56", value)
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "text/csv", export.FormatCSV.ContentType())
	assert.Equal(t, ".csv", export.FormatCSV.FileExtension())
	assert.Equal(t, "application/pdf", export.FormatPDF.ContentType())
	assert.Equal(t, ".xlsx", export.FormatXLSX.FileExtension())
}
