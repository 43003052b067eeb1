package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"isafari/internal/repositories"
)

func newLocationsCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Audit and clean service and provider locations",
	}

	audit := &cobra.Command{
		Use:   "audit",
		Short: "List active services the journey planner cannot match reliably",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := &repositories.LocationRepository{DB: db}
			issues, err := repo.Audit(cmd.Context())
			if err != nil {
				return fmt.Errorf("audit locations: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, "no location issues found")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tREGION\tDISTRICT\tAREA\tPROBLEM")
			for _, li := range issues {
				fmt.Fprintf(tw, "%d\t%s\t%q\t%q\t%q\t%s\n", li.ServiceID, li.Title, li.Region, li.District, li.Area, li.Problem)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d issue(s)\n", len(issues))
			return nil
		},
	}

	var dryRun bool
	normalize := &cobra.Command{
		Use:   "normalize",
		Short: "Trim location fields and turn blanks into NULL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := &repositories.LocationRepository{DB: db}
			changed, err := repo.Normalize(cmd.Context(), dryRun)
			if err != nil {
				return fmt.Errorf("normalize locations: %w", err)
			}
			verb := "updated"
			if dryRun {
				verb = "would update"
			}
			for _, tbl := range []string{"services", "service_providers"} {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %d value(s)\n", tbl, verb, changed[tbl])
			}
			return nil
		},
	}
	normalize.Flags().BoolVar(&dryRun, "dry-run", false, "only count the values that would change")

	cmd.AddCommand(audit, normalize)
	return cmd
}
