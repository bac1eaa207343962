package export

import (
	"strings"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// generateCSV emits the report as comma-separated text: title, subtitle, a
// blank line, the header row, then each section as a blank line, the section
// title, and one line per row with currency-formatted values.
func generateCSV(report *domain.Report) []byte {
	var lines []string
	lines = append(lines, report.Title)
	lines = append(lines, report.Subtitle)
	lines = append(lines, "")

	headers := make([]string, 0, len(report.ColumnHeaders)+1)
	headers = append(headers, escapeCSV("Account"))
	for _, header := range report.ColumnHeaders {
		headers = append(headers, escapeCSV(header))
	}
	lines = append(lines, strings.Join(headers, ","))

	for _, section := range report.Sections {
		lines = append(lines, "")
		lines = append(lines, escapeCSV(section.Title))

		for _, row := range section.Rows {
			fields := make([]string, 0, len(row.Values)+1)
			fields = append(fields, escapeCSV(row.Label))
			for _, value := range row.Values {
				fields = append(fields, escapeCSV(formatCurrency(value)))
			}
			lines = append(lines, strings.Join(fields, ","))
		}
	}

	return []byte(strings.Join(lines, "\n"))
}

// escapeCSV quotes a field containing a comma, quote, or newline, doubling any
// internal quotes.
func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}
