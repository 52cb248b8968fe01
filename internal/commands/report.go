package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/finstat/internal/model"
	"github.com/cleared-dev/finstat/internal/report"
	"github.com/cleared-dev/finstat/internal/reportlog"
	"github.com/cleared-dev/finstat/internal/sheet"
)

func newReportCommand(repoDir *string) *cobra.Command {
	var from, to, format string
	var companyID int
	var comparePrior bool

	cmd := &cobra.Command{
		Use:   "report <balance-sheet|income-statement|cash-flow>",
		Short: "Generate a financial statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := sheet.ParseType(args[0])
			if err != nil {
				return err
			}
			if format != "table" && format != "csv" {
				return fmt.Errorf("--format: want table or csv, got %q", format)
			}

			e, err := loadEnv(cmd, *repoDir)
			if err != nil {
				return err
			}

			end, err := parseDate("to", to)
			if err != nil {
				return err
			}
			start := e.cfg.Fiscal.YearStartFor(end)
			if from != "" {
				if start, err = parseDate("from", from); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("company-id") {
				companyID = e.cfg.Business.CompanyID
			}
			if !cmd.Flags().Changed("compare-prior") {
				comparePrior = e.cfg.Reports.ComparePrior
			}

			ctx := cmd.Context()
			repo, closeRepo, err := e.repository(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			svc, err := e.service(repo, comparePrior)
			if err != nil {
				return err
			}
			rep, err := svc.Generate(ctx, report.Request{
				CompanyID: companyID,
				Type:      typ,
				Period:    model.Period{From: start, To: end},
			})
			if err != nil {
				return err
			}

			if format == "csv" {
				if err := sheet.WriteRows(cmd.OutOrStdout(), rep.Rows); err != nil {
					return fmt.Errorf("writing csv: %w", err)
				}
			} else {
				renderReport(cmd.OutOrStdout(), e.cfg.Business.Name, rep)
			}
			renderGaps(cmd.ErrOrStderr(), rep.Gaps)

			return reportlog.Append(e.root, []reportlog.Entry{reportlog.FromReport(rep)})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day of the period (default: start of the fiscal year)")
	cmd.Flags().StringVar(&to, "to", time.Now().Format(dateLayout), "last day of the period")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")
	cmd.Flags().IntVar(&companyID, "company-id", 0, "company to report for (default: business.company_id)")
	cmd.Flags().BoolVar(&comparePrior, "compare-prior", false, "add the prior period column (default: reports.compare_prior)")

	return cmd
}
