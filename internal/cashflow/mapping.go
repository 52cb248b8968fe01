// Package cashflow derives an indirect-method cash-flow statement from a
// balance-sheet movement and an income statement by evaluating a static
// mapping tree of source codes, declared signs and reducers.
package cashflow

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidMapping is returned for a malformed mapping table.
var ErrInvalidMapping = errors.New("cashflow: invalid mapping")

//go:embed mappings/indirect.yaml
var defaultMappingYAML []byte

// Reducer folds a node's contributions into its amount. The first
// contribution seeds the total and each later one is applied to it, so
// subtract yields the first minus the rest. A source code absent from the
// statement maps folds in as zero, which also takes part in max and min.
type Reducer string

const (
	ReducerSum      Reducer = "sum"
	ReducerSubtract Reducer = "subtract"
	ReducerMax      Reducer = "max"
	ReducerMin      Reducer = "min"
)

// Valid reports whether r is a known reducer.
func (r Reducer) Valid() bool {
	switch r {
	case ReducerSum, ReducerSubtract, ReducerMax, ReducerMin:
		return true
	}
	return false
}

// Apply returns acc combined with x.
func (r Reducer) Apply(acc, x decimal.Decimal) decimal.Decimal {
	switch r {
	case ReducerSubtract:
		return acc.Sub(x)
	case ReducerMax:
		return decimal.Max(acc, x)
	case ReducerMin:
		return decimal.Min(acc, x)
	}
	return acc.Add(x)
}

// Position places a node's row relative to the rows of its descendants.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

// MappingNode is one line of the cash-flow statement. Its amount folds the
// sign-normalized amounts of the From codes, then the amounts of its
// children, with Reducer: first contribution minus the rest for subtract,
// zero for an absent code, zero for a node with no contributions.
type MappingNode struct {
	Code     string        `yaml:"code"`
	Name     string        `yaml:"name"`
	Debit    bool          `yaml:"debit"`
	From     []string      `yaml:"from"`
	Reducer  Reducer       `yaml:"reducer"`
	Position Position      `yaml:"position"`
	Children []MappingNode `yaml:"children"`
}

// Reconciliation names the section totals that must add up to the change in
// cash.
type Reconciliation struct {
	Sections []string `yaml:"sections"`
	Cash     string   `yaml:"cash"`
}

// Enabled reports whether a check is configured.
func (r Reconciliation) Enabled() bool {
	return r.Cash != "" && len(r.Sections) > 0
}

// Mapping is the immutable, versioned cash-flow derivation table.
type Mapping struct {
	version   string
	sections  []MappingNode
	reconcile Reconciliation
}

type mappingFile struct {
	Version   string         `yaml:"version"`
	Reconcile Reconciliation `yaml:"reconcile"`
	Sections  []MappingNode  `yaml:"sections"`
}

// NewMapping validates sections and returns a mapping. Empty reducers
// default to sum and empty positions to before. Codes must be unique across
// the whole tree, and the reconciliation may only name top-level sections.
func NewMapping(version string, sections []MappingNode, rec Reconciliation) (Mapping, error) {
	seen := make(map[string]bool)
	normalized := make([]MappingNode, len(sections))
	for i, s := range sections {
		n, err := normalize(s, seen)
		if err != nil {
			return Mapping{}, err
		}
		normalized[i] = n
	}

	top := make(map[string]bool, len(sections))
	for _, s := range normalized {
		top[s.Code] = true
	}
	if rec.Cash != "" && !top[rec.Cash] {
		return Mapping{}, fmt.Errorf("%w: reconciliation cash line %q is not a section", ErrInvalidMapping, rec.Cash)
	}
	for _, code := range rec.Sections {
		if !top[code] {
			return Mapping{}, fmt.Errorf("%w: reconciliation section %q is not a section", ErrInvalidMapping, code)
		}
	}

	return Mapping{
		version:   version,
		sections:  normalized,
		reconcile: Reconciliation{Sections: append([]string(nil), rec.Sections...), Cash: rec.Cash},
	}, nil
}

// normalize deep-copies n with defaults applied.
func normalize(n MappingNode, seen map[string]bool) (MappingNode, error) {
	if n.Code == "" {
		return MappingNode{}, fmt.Errorf("%w: node %q has no code", ErrInvalidMapping, n.Name)
	}
	if seen[n.Code] {
		return MappingNode{}, fmt.Errorf("%w: duplicate code %q", ErrInvalidMapping, n.Code)
	}
	seen[n.Code] = true

	if n.Reducer == "" {
		n.Reducer = ReducerSum
	}
	if !n.Reducer.Valid() {
		return MappingNode{}, fmt.Errorf("%w: node %s: unknown reducer %q", ErrInvalidMapping, n.Code, n.Reducer)
	}
	switch n.Position {
	case "":
		n.Position = PositionBefore
	case PositionBefore, PositionAfter:
	default:
		return MappingNode{}, fmt.Errorf("%w: node %s: unknown position %q", ErrInvalidMapping, n.Code, n.Position)
	}
	if n.Name == "" {
		n.Name = n.Code
	}

	n.From = append([]string(nil), n.From...)
	children := make([]MappingNode, len(n.Children))
	for i, c := range n.Children {
		nc, err := normalize(c, seen)
		if err != nil {
			return MappingNode{}, err
		}
		children[i] = nc
	}
	n.Children = children
	return n, nil
}

// ParseMapping decodes a YAML mapping table.
func ParseMapping(data []byte) (Mapping, error) {
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Mapping{}, fmt.Errorf("%w: %w", ErrInvalidMapping, err)
	}
	if len(f.Sections) == 0 {
		return Mapping{}, fmt.Errorf("%w: no sections", ErrInvalidMapping)
	}
	return NewMapping(f.Version, f.Sections, f.Reconcile)
}

// LoadMapping reads a YAML mapping table.
func LoadMapping(r io.Reader) (Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Mapping{}, fmt.Errorf("reading mapping: %w", err)
	}
	return ParseMapping(data)
}

var defaultMapping = sync.OnceValues(func() (Mapping, error) {
	m, err := ParseMapping(defaultMappingYAML)
	if err != nil {
		return Mapping{}, fmt.Errorf("embedded mapping: %w", err)
	}
	return m, nil
})

// DefaultMapping returns the built-in mapping for the default chart.
func DefaultMapping() (Mapping, error) {
	return defaultMapping()
}

// Version returns the mapping version.
func (m Mapping) Version() string { return m.version }

// Reconciliation returns the configured cash check.
func (m Mapping) Reconciliation() Reconciliation {
	return Reconciliation{Sections: append([]string(nil), m.reconcile.Sections...), Cash: m.reconcile.Cash}
}

// Sections returns a deep copy of the top-level nodes.
func (m Mapping) Sections() []MappingNode {
	out := make([]MappingNode, len(m.sections))
	for i, s := range m.sections {
		out[i] = clone(s)
	}
	return out
}

// Sources returns every source code referenced by the mapping, in
// evaluation order, without repeats.
func (m Mapping) Sources() []string {
	var out []string
	seen := make(map[string]bool)
	var visit func(n MappingNode)
	visit = func(n MappingNode) {
		for _, c := range n.Children {
			visit(c)
		}
		for _, code := range n.From {
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		}
	}
	for _, s := range m.sections {
		visit(s)
	}
	return out
}

func clone(n MappingNode) MappingNode {
	n.From = append([]string(nil), n.From...)
	children := make([]MappingNode, len(n.Children))
	for i, c := range n.Children {
		children[i] = clone(c)
	}
	n.Children = children
	return n
}
