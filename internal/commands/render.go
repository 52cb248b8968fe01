package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	lgtree "github.com/charmbracelet/lipgloss/tree"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/report"
	"github.com/cleared-dev/finstat/internal/sheet"
	"github.com/cleared-dev/finstat/internal/tree"
)

func describe(t sheet.Type, p model.Period) string {
	if t == sheet.TypeBalanceSheet || p.Cumulative() {
		return "As of " + p.To.Format(dateLayout)
	}
	return p.From.Format(dateLayout) + " to " + p.To.Format(dateLayout)
}

func renderReport(w io.Writer, business string, rep *report.Report) {
	comparing := !rep.Prior.To.IsZero()

	headers := []string{"Code", "Account", describe(rep.Type, rep.Period), "%"}
	if comparing {
		headers = append(headers, describe(rep.Type, rep.Prior), "%")
	}

	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		name := strings.Repeat("  ", r.Indent) + r.Name
		if r.Heading {
			rows = append(rows, append([]string{"", name}, make([]string, len(headers)-2)...))
			continue
		}
		row := []string{r.Code, name, r.Current.AmountText(), r.Current.PercentText()}
		if comparing {
			row = append(row, r.Prior.AmountText(), r.Prior.PercentText())
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col >= 2 {
				s = s.Align(lipgloss.Right)
			}
			if row >= 0 && row < len(rep.Rows) && rep.Rows[row].Heading {
				s = s.Inherit(headingStyle)
			}
			return s
		})

	if business != "" {
		fmt.Fprintln(w, titleStyle.Render(business))
	}
	fmt.Fprintln(w, titleStyle.Render(rep.Type.Title()))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("run %s, layout %s", rep.ID, rep.Version)))
}

func renderGaps(w io.Writer, gaps []report.Gap) {
	for _, g := range gaps {
		fmt.Fprintf(w, "%s %s\n", warnStyle.Render("warning:"), g)
	}
}

// renderChart draws the forest, hiding accounts the company cannot see.
func renderChart(w io.Writer, roots []*tree.Node, companyID int) {
	var build func(n *tree.Node) *lgtree.Tree
	build = func(n *tree.Node) *lgtree.Tree {
		label := fmt.Sprintf("%s %s", n.Code(), n.Account.Name)
		if n.Account.Debit {
			label += mutedStyle.Render(" (debit)")
		} else {
			label += mutedStyle.Render(" (credit)")
		}
		t := lgtree.Root(label)
		for _, c := range n.Children {
			if !c.Account.VisibleTo(companyID) {
				continue
			}
			if len(c.Children) == 0 {
				t.Child(fmt.Sprintf("%s %s", c.Code(), c.Account.Name))
				continue
			}
			t.Child(build(c))
		}
		return t
	}
	for _, r := range roots {
		if !r.Account.VisibleTo(companyID) {
			continue
		}
		fmt.Fprintln(w, build(r).String())
	}
}
