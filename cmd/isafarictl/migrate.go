package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"isafari/internal/migrations"
)

type connectFunc func(cmd *cobra.Command) (*sql.DB, error)

func newMigrateCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the embedded schema migrations",
	}

	steps := []struct {
		use, short string
		run        func(*sql.DB) error
	}{
		{"up", "Apply all pending migrations", migrations.Up},
		{"down", "Roll back the most recent migration", migrations.Down},
		{"status", "Print the state of every migration", migrations.Status},
	}
	for _, s := range steps {
		cmd.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := connect(cmd)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := s.run(db); err != nil {
					return err
				}
				if s.use != "status" {
					fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", s.use)
				}
				return nil
			},
		})
	}
	return cmd
}
