package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
)

// Format identifies a report serialization format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = fmt.Errorf("%w: unknown export format", apperrors.ErrValidation)

// ParseFormat normalizes a caller-supplied format string.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
}

// Generate serializes the report into the requested format. The caller owns
// filename choice and delivery; this only produces bytes.
func Generate(report *domain.Report, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return generateCSV(report), nil
	case FormatPDF:
		return generatePDF(report)
	case FormatXLSX:
		return generateXLSX(report)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// FileExtension returns the filename extension for the format, dot included.
func (f Format) FileExtension() string {
	return "." + string(f)
}

// formatCurrency renders a value as fixed two-decimal USD currency text,
// for example "$1,234.56" and "-$0.25".
func formatCurrency(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
	}

	fixed := value.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return sign + "$" + grouped.String() + "." + fracPart
}
