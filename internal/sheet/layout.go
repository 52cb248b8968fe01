package sheet

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout is returned for a malformed layout table.
var ErrInvalidLayout = errors.New("sheet: invalid layout")

//go:embed layouts/*.yaml
var layoutFS embed.FS

// LayoutRow is one statutory row: the account code it shows, an optional
// label overriding the account name, and its indent. Heading rows carry no
// amount.
type LayoutRow struct {
	Code    string `yaml:"code"`
	Label   string `yaml:"label"`
	Indent  int    `yaml:"indent"`
	Heading bool   `yaml:"heading"`
}

// Layout is the immutable, versioned row order of one statement.
type Layout struct {
	typ     Type
	version string
	base    string
	rows    []LayoutRow
}

type layoutFile struct {
	Type    Type        `yaml:"type"`
	Version string      `yaml:"version"`
	Base    string      `yaml:"base"`
	Rows    []LayoutRow `yaml:"rows"`
}

// NewLayout validates rows and returns a layout. base is the code whose
// amount is the 100% reference for percentages; it may be empty.
func NewLayout(t Type, version, base string, rows []LayoutRow) (Layout, error) {
	if t != TypeBalanceSheet && t != TypeIncomeStatement {
		return Layout{}, fmt.Errorf("%w: unsupported statement type %q", ErrInvalidLayout, t)
	}
	for i, r := range rows {
		if r.Indent < 0 {
			return Layout{}, fmt.Errorf("%w: row %d: negative indent", ErrInvalidLayout, i+1)
		}
		if r.Heading && r.Label == "" {
			return Layout{}, fmt.Errorf("%w: row %d: heading without label", ErrInvalidLayout, i+1)
		}
		if !r.Heading && r.Code == "" {
			return Layout{}, fmt.Errorf("%w: row %d: missing code", ErrInvalidLayout, i+1)
		}
	}
	cp := make([]LayoutRow, len(rows))
	copy(cp, rows)
	return Layout{typ: t, version: version, base: base, rows: cp}, nil
}

// ParseLayout decodes a YAML layout table.
func ParseLayout(data []byte) (Layout, error) {
	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return NewLayout(f.Type, f.Version, f.Base, f.Rows)
}

// LoadLayout reads a YAML layout table.
func LoadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	return ParseLayout(data)
}

var defaultLayouts = sync.OnceValues(func() (map[Type]Layout, error) {
	out := make(map[Type]Layout)
	for _, t := range []Type{TypeBalanceSheet, TypeIncomeStatement} {
		data, err := layoutFS.ReadFile("layouts/" + string(t) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("reading embedded layout %s: %w", t, err)
		}
		l, err := ParseLayout(data)
		if err != nil {
			return nil, fmt.Errorf("embedded layout %s: %w", t, err)
		}
		out[t] = l
	}
	return out, nil
})

// DefaultLayout returns the built-in layout for a statement.
func DefaultLayout(t Type) (Layout, error) {
	layouts, err := defaultLayouts()
	if err != nil {
		return Layout{}, err
	}
	l, ok := layouts[t]
	if !ok {
		return Layout{}, fmt.Errorf("%w: no default layout for %q", ErrInvalidLayout, t)
	}
	return l, nil
}

// Type returns the statement the layout belongs to.
func (l Layout) Type() Type { return l.typ }

// Version returns the layout version.
func (l Layout) Version() string { return l.version }

// Base returns the percentage reference code.
func (l Layout) Base() string { return l.base }

// Rows returns a copy of the layout rows.
func (l Layout) Rows() []LayoutRow {
	out := make([]LayoutRow, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len returns the number of rows.
func (l Layout) Len() int { return len(l.rows) }
