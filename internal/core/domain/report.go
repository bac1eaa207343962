package domain

import "github.com/shopspring/decimal"

// ReportRow is one line of a report: a label, one value per report column,
// and a flag marking total rows (rendered bold with a closing rule).
type ReportRow struct {
	Label   string            `json:"label"`
	Values  []decimal.Decimal `json:"values"`
	IsTotal bool              `json:"isTotal"`
}

// ReportSection groups rows under an optional section title.
type ReportSection struct {
	Title string      `json:"title"`
	Rows  []ReportRow `json:"rows"`
}

// Report is the generic tabular document produced by the report builder and
// consumed by every serializer.
type Report struct {
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle"`
	ColumnHeaders []string        `json:"columnHeaders"`
	Sections      []ReportSection `json:"sections"`
}
