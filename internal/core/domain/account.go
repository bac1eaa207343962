package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in report order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// NormalBalance is the side (debit or credit) on which an account type's
// balance is conventionally positive.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalance returns the normal balance side for the account type.
// Asset/Expense are debit-normal; Liability/Equity/Revenue are credit-normal.
// This mapping is fixed accounting convention and is never user-editable.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DisplayName returns the section heading used for the type in reports.
func (t AccountType) DisplayName() string {
	switch t {
	case Asset:
		return "Assets"
	case Liability:
		return "Liabilities"
	case Equity:
		return "Equity"
	case Revenue:
		return "Revenue"
	case Expense:
		return "Expenses"
	}
	return string(t)
}

// Account represents a single ledger account within a company's chart of accounts.
// CompanyID is empty only transiently, for accounts created before companies
// existed; bootstrap attaches such orphans to the default company.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary Key (UUID)
	CompanyID   string      `json:"companyID"` // FK -> companies.company_id
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	SortRank    int         `json:"sortRank"` // User-assigned ordering within the type
	AuditFields
}
