// Package reportlog records generated reports in logs/report-log.csv.
package reportlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/finstat/internal/report"
)

// Entry is one row in the report log.
type Entry struct {
	RunID     uuid.UUID
	Timestamp time.Time
	CompanyID int
	Statement string
	Period    string
	Version   string
	Rows      int
	Gaps      int
}

// Header is the CSV header for report-log.csv.
const Header = "run_id,timestamp,company_id,statement,period,version,rows,gaps"

const (
	numFields    = 8
	logDir       = "logs"
	logFile      = "logs/report-log.csv"
	colRunID     = 0
	colTimestamp = 1
	colCompanyID = 2
	colStatement = 3
	colPeriod    = 4
	colVersion   = 5
	colRows      = 6
	colGaps      = 7
)

// FromReport summarizes a generated report.
func FromReport(r *report.Report) Entry {
	return Entry{
		RunID:     r.ID,
		Timestamp: r.GeneratedAt,
		CompanyID: r.CompanyID,
		Statement: string(r.Type),
		Period:    r.Period.String(),
		Version:   r.Version,
		Rows:      len(r.Rows),
		Gaps:      len(r.Gaps),
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID.String()
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colCompanyID] = strconv.Itoa(e.CompanyID)
	row[colStatement] = e.Statement
	row[colPeriod] = e.Period
	row[colVersion] = e.Version
	row[colRows] = strconv.Itoa(e.Rows)
	row[colGaps] = strconv.Itoa(e.Gaps)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := uuid.Parse(record[colRunID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	ints := make([]int, 0, 3)
	for _, col := range []int{colCompanyID, colRows, colGaps} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing column %d %q: %w", col+1, record[col], err)
		}
		ints = append(ints, n)
	}

	return Entry{
		RunID:     id,
		Timestamp: ts,
		CompanyID: ints[0],
		Statement: record[colStatement],
		Period:    record[colPeriod],
		Version:   record[colVersion],
		Rows:      ints[1],
		Gaps:      ints[2],
	}, nil
}

// Append writes entries to <repoRoot>/logs/report-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening report log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/report-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(repoRoot, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening report log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
