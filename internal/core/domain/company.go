package domain

import "time"

// Company is an isolated set of books: it owns a chart of accounts and the
// journal entries posted against it. Deleting a company deletes everything it owns.
type Company struct {
	CompanyID string    `json:"companyID"` // Primary Key (UUID)
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
