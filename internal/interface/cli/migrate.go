package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tracko-hub/tracko/internal/infrastructure/persistence/postgres"
	"github.com/tracko-hub/tracko/pkg/logger"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

func migrateCmd(app func() *App) *cobra.Command {
	var (
		rollback bool
		status   bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			if a.Config.Database.URL == "" {
				return ErrNoDatabase
			}

			ctx := c.Context()
			conn, err := a.connectPostgres(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			m := postgres.NewMigrator(conn)
			switch {
			case rollback:
				if err := m.Rollback(ctx); err != nil {
					return err
				}
				a.Log.Info("last migration rolled back")
			case !status:
				n, err := m.Migrate(ctx)
				if err != nil {
					return err
				}
				a.Log.Info("migrations applied", logger.Int("count", n))
			}

			all, err := m.Status(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
			for _, mig := range all {
				applied := "no"
				if mig.IsApplied {
					applied = mig.AppliedAt.Format(timeutil.DateLayout + " " + timeutil.FormatTime)
				}
				fmt.Fprintf(w, "%03d\t%s\t%s\n", mig.Version, mig.Name, applied)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the last applied migration")
	cmd.Flags().BoolVar(&status, "status", false, "only print migration status")
	cmd.MarkFlagsMutuallyExclusive("rollback", "status")
	return cmd
}
