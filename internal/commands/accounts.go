package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand(repoDir *string) *cobra.Command {
	var companyID int

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Show the chart of accounts as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, *repoDir)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("company-id") {
				companyID = e.cfg.Business.CompanyID
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
			forest, gaps, err := svc.Chart(ctx, companyID)
			if err != nil {
				return err
			}

			renderChart(cmd.OutOrStdout(), forest.Roots, companyID)
			renderGaps(cmd.ErrOrStderr(), gaps)
			if len(gaps) > 0 {
				return fmt.Errorf("chart of accounts has %d unattached accounts", len(gaps))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&companyID, "company-id", 0, "company whose accounts to show (default: business.company_id)")
	return cmd
}
