package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finstat/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account_id,description,debit,credit,counterparty,reference,status,notes"

const (
	numFields  = 10
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
	colCparty  = 6
	colRef     = 7
	colStatus  = 8
	colNotes   = 9
)

var (
	headerNames = strings.Split(Header, ",")
	required    = []int{colEntryID, colDate, colAcctID, colDebit, colCredit}
)

// ReadLegs reads all legs from a journal.csv reader. Columns are matched by
// header name; unknown columns are ignored.
func ReadLegs(r io.Reader) ([]model.Leg, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var legs []model.Leg
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading journal CSV: %w", err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", line, len(header), len(rec))
		}
		leg, err := UnmarshalLeg(reorder(rec, index))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

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
			return nil, fmt.Errorf("journal CSV: missing column %q", headerNames[col])
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

// WriteLegs writes legs to a journal.csv writer (including header).
func WriteLegs(w io.Writer, legs []model.Leg) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headerNames); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, leg := range legs {
		if err := cw.Write(MarshalLeg(leg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLeg converts a Leg to a CSV row ([]string).
func MarshalLeg(leg model.Leg) []string {
	row := make([]string, numFields)
	row[colEntryID] = leg.EntryID
	row[colDate] = leg.Date.Format(dateFormat)
	row[colAcctID] = strconv.Itoa(leg.AccountID)
	row[colDesc] = leg.Description

	if !leg.Debit.IsZero() {
		row[colDebit] = leg.Debit.StringFixed(2)
	}
	if !leg.Credit.IsZero() {
		row[colCredit] = leg.Credit.StringFixed(2)
	}

	row[colCparty] = leg.Counterparty
	row[colRef] = leg.Reference
	row[colStatus] = string(leg.Status)
	row[colNotes] = leg.Notes

	return row
}

// UnmarshalLeg converts a CSV row in Header order to a Leg.
func UnmarshalLeg(record []string) (model.Leg, error) {
	if len(record) != numFields {
		return model.Leg{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Leg{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return model.Leg{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.Leg{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.Leg{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.Leg{
		EntryID:      record[colEntryID],
		Date:         date,
		AccountID:    accountID,
		Description:  record[colDesc],
		Debit:        debit,
		Credit:       credit,
		Counterparty: record[colCparty],
		Reference:    record[colRef],
		Status:       model.EntryStatus(record[colStatus]),
		Notes:        record[colNotes],
	}, nil
}
