package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports the usual normal side for accounts of this type.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// SharedCompany marks a system account shared by every company.
const SharedCompany = 0

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID          int
	Code        string
	ParentCode  string // == Code for a root account
	RootCode    string
	Name        string
	Type        AccountType
	Debit       bool // normal balance side
	CompanyID   int  // SharedCompany = system account
	Level       int
	Description string
}

// IsRoot reports whether the account is the top of its tree.
func (a Account) IsRoot() bool {
	return a.ParentCode == a.Code
}

// Shared reports whether the account belongs to the shared system chart.
func (a Account) Shared() bool {
	return a.CompanyID == SharedCompany
}

// VisibleTo reports whether the account may be displayed in a report for companyID.
func (a Account) VisibleTo(companyID int) bool {
	return a.Shared() || a.CompanyID == companyID
}
