package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/finstat/internal/ledger"
	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/report"
	"github.com/cleared-dev/finstat/internal/tree"
)

func newTrialBalanceCommand(repoDir *string) *cobra.Command {
	var to string
	var depth int

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Aggregate the chart as of a date and check debits equal credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := parseDate("to", to)
			if err != nil {
				return err
			}
			e, err := loadEnv(cmd, *repoDir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repo, closeRepo, err := e.repository(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			svc, err := e.service(repo, false)
			if err != nil {
				return err
			}
			tb, err := svc.TrialBalance(ctx, e.cfg.Business.CompanyID, asOf)
			if err != nil {
				return err
			}

			renderTrialBalance(cmd.OutOrStdout(), tb, depth)
			renderGaps(cmd.ErrOrStderr(), tb.Gaps)

			if store, ok := repo.(*ledger.Store); ok {
				verrs, err := store.Check(ctx, model.AsOf(asOf))
				if err != nil {
					return fmt.Errorf("checking journal: %w", err)
				}
				for _, v := range verrs {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warnStyle.Render("journal:"), v.Error())
				}
			}

			if !tb.Balance.Balanced() {
				return fmt.Errorf("out of balance by %s", tb.Balance.Difference().StringFixed(2))
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Balanced"))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", time.Now().Format(dateLayout), "balances as of this date")
	cmd.Flags().IntVar(&depth, "depth", 1, "account levels to list below each root")
	return cmd
}

func renderTrialBalance(w io.Writer, tb *report.TrialBalance, depth int) {
	var rows [][]string
	for _, r := range tb.Roots {
		r.Walk(func(n *tree.Node, d int) bool {
			debit, credit := "", ""
			if n.Account.Debit {
				debit = n.Amount.StringFixed(2)
			} else {
				credit = n.Amount.StringFixed(2)
			}
			rows = append(rows, []string{n.Code(), strings.Repeat("  ", d) + n.Account.Name, debit, credit})
			return d < depth
		})
	}
	rows = append(rows, []string{"", "Total", fixed(tb.Balance.Debit), fixed(tb.Balance.Credit)})
	totalRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Code", "Account", "Debit", "Credit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow || row == totalRow {
				s = s.Bold(true)
			}
			if col >= 2 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	fmt.Fprintln(w, titleStyle.Render("Trial Balance as of "+tb.AsOf.Format(dateLayout)))
	fmt.Fprintln(w, t.Render())
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
