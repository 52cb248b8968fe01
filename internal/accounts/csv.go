package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/finstat/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "account_id,code,parent_code,root_code,name,type,normal,company_id,level,description"

const (
	numFields  = 10
	colID      = 0
	colCode    = 1
	colParent  = 2
	colRoot    = 3
	colName    = 4
	colType    = 5
	colNormal  = 6
	colCompany = 7
	colLevel   = 8
	colDesc    = 9
)

const (
	normalDebit  = "debit"
	normalCredit = "credit"
)

// required lists the columns a chart must carry; the rest default.
var required = []int{colID, colCode, colName, colType}

var headerNames = strings.Split(Header, ",")

// ReadAccounts reads chart-of-accounts.csv. Columns are matched by header
// name, so files may order them freely or omit optional ones.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var accounts []model.Account
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading accounts CSV: %w", err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", line, len(header), len(rec))
		}
		acct, err := UnmarshalAccount(reorder(rec, index))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// columnIndex maps each known column to its position in header, -1 when absent.
func columnIndex(header []string) ([]int, error) {
	index := make([]int, numFields)
	for i := range index {
		index[i] = -1
	}
	for pos, name := range header {
		for col, known := range headerNames {
			if strings.EqualFold(strings.TrimSpace(name), known) {
				index[col] = pos
			}
		}
	}
	for _, col := range required {
		if index[col] < 0 {
			return nil, fmt.Errorf("accounts CSV: missing column %q", headerNames[col])
		}
	}
	return index, nil
}

func reorder(rec []string, index []int) []string {
	out := make([]string, numFields)
	for col, pos := range index {
		if pos >= 0 {
			out[col] = rec[pos]
		}
	}
	return out
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headerNames); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(acct.ID)
	row[colCode] = acct.Code
	row[colParent] = acct.ParentCode
	row[colRoot] = acct.RootCode
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colNormal] = normalCredit
	if acct.Debit {
		row[colNormal] = normalDebit
	}
	row[colCompany] = strconv.Itoa(acct.CompanyID)
	row[colLevel] = strconv.Itoa(acct.Level)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row in Header order to an Account. An
// empty parent_code makes the account a root; an empty normal column takes
// the usual side of the account type.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[colID], err)
	}
	code := strings.TrimSpace(record[colCode])
	if code == "" {
		return model.Account{}, fmt.Errorf("account %d: empty code", id)
	}
	typ := model.AccountType(record[colType])
	if !typ.Valid() {
		return model.Account{}, fmt.Errorf("account %s: unknown type %q", code, record[colType])
	}

	var debit bool
	switch strings.ToLower(record[colNormal]) {
	case "":
		debit = typ.DebitNormal()
	case normalDebit:
		debit = true
	case normalCredit:
		debit = false
	default:
		return model.Account{}, fmt.Errorf("account %s: normal side %q must be debit or credit", code, record[colNormal])
	}

	company, err := optionalInt(record[colCompany])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing company_id %q: %w", record[colCompany], err)
	}
	level, err := optionalInt(record[colLevel])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing level %q: %w", record[colLevel], err)
	}

	parent := strings.TrimSpace(record[colParent])
	if parent == "" {
		parent = code
	}
	root := strings.TrimSpace(record[colRoot])
	if root == "" && parent == code {
		root = code
	}

	return model.Account{
		ID:          id,
		Code:        code,
		ParentCode:  parent,
		RootCode:    root,
		Name:        record[colName],
		Type:        typ,
		Debit:       debit,
		CompanyID:   company,
		Level:       level,
		Description: record[colDesc],
	}, nil
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
