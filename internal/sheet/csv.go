package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header is the CSV header for exported statements.
const Header = "code,name,indent,amount,percentage,prior_amount,prior_percentage"

const (
	numFields   = 7
	colCode     = 0
	colName     = 1
	colIndent   = 2
	colAmount   = 3
	colPercent  = 4
	colPriorAmt = 5
	colPriorPct = 6
)

// WriteRows writes comparative rows as CSV (including header).
func WriteRows(w io.Writer, rows []ComparativeRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		if err := cw.Write(MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a comparative row to a CSV record. Headings leave the
// amount columns empty.
func MarshalRow(r ComparativeRow) []string {
	row := make([]string, numFields)
	row[colCode] = r.Code
	row[colName] = r.Name
	row[colIndent] = strconv.Itoa(r.Indent)
	if r.Heading {
		return row
	}
	row[colAmount] = r.Current.AmountText()
	row[colPercent] = r.Current.PercentText()
	row[colPriorAmt] = r.Prior.AmountText()
	row[colPriorPct] = r.Prior.PercentText()
	return row
}
