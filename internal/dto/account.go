package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required"`
}

// UpdateAccountRequest defines the payload for updating an account.
// A nil field leaves the current value unchanged.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType"`
}

// ReorderAccountsRequest rewrites the ordering of one type's accounts.
type ReorderAccountsRequest struct {
	AccountType domain.AccountType `json:"accountType" binding:"required"`
	AccountIDs  []string           `json:"accountIDs" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	CompanyID   string             `json:"companyID"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	SortRank    int                `json:"sortRank"`
	Balance     *decimal.Decimal   `json:"balance,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		CompanyID:   a.CompanyID,
		Name:        a.Name,
		AccountType: a.AccountType,
		SortRank:    a.SortRank,
	}
}
