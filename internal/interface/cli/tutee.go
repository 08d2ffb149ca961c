package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracko-hub/tracko/internal/application/command"
	"github.com/tracko-hub/tracko/internal/application/query"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
)

func tuteeCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutee",
		Short: "Manage tutees",
	}

	cmd.AddCommand(
		tuteeAddCmd(app),
		tuteeListCmd(app),
		tuteeShowCmd(app),
		tuteeLessonCmd(app),
		tuteePaymentCmd(app),
		tuteePaidCmd(app),
	)
	return cmd
}

// withStore opens the store and runs fn with it.
func withStore(c *cobra.Command, app func() *App, fn func(ctx context.Context, a *App, s *Store) error) error {
	a := app()
	ctx := c.Context()
	s, err := a.Store(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, a, s)
}

func printTutee(c *cobra.Command, format string, t *tutee.Tutee) error {
	return writeViews(c.OutOrStdout(), format, []query.TuteeView{query.NewTuteeView(t)}, false)
}

func tuteeAddCmd(app func() *App) *cobra.Command {
	var (
		in     command.AddTuteeCommand
		output string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tutee",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withStore(c, app, func(ctx context.Context, a *App, s *Store) error {
				res, err := command.NewAddTuteeHandler(a.commandDeps(s)).Handle(ctx, in)
				if err != nil {
					return err
				}
				return printTutee(c, output, res.Tutee)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Name, "name", "n", "", "tutee name")
	f.StringVarP(&in.Phone, "phone", "p", "", "phone number")
	f.StringVarP(&in.Address, "address", "a", "", "address")
	f.StringVarP(&in.Level, "level", "l", "", "education level, e.g. p5, s2, j1")
	f.StringArrayVarP(&in.Tags, "tag", "t", nil, "tag (repeatable)")
	f.StringVarP(&output, "output", "o", outputText, "output format (text, json)")
	for _, name := range []string{"name", "phone", "address", "level"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func tuteeListCmd(app func() *App) *cobra.Command {
	var (
		q      query.ListTuteesQuery
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tutees with their index",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withStore(c, app, func(ctx context.Context, _ *App, s *Store) error {
				views, err := query.NewListTuteesHandler(s.Repo).Handle(ctx, q)
				if err != nil {
					return err
				}
				return writeViews(c.OutOrStdout(), output, views, true)
			})
		},
	}

	cmd.Flags().BoolVar(&q.OverdueOnly, "overdue", false, "only tutees with an overdue payment")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, json)")
	return cmd
}

func tuteeShowCmd(app func() *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <index|id>",
		Short: "Show one tutee",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return withStore(c, app, func(ctx context.Context, a *App, s *Store) error {
				view, err := a.getTutee(s).Handle(ctx, query.GetTuteeQuery{Ref: args[0]})
				if err != nil {
					return err
				}
				return writeViews(c.OutOrStdout(), output, []query.TuteeView{*view}, false)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, json)")
	return cmd
}

func tuteeLessonCmd(app func() *App) *cobra.Command {
	var in command.AddLessonCommand

	cmd := &cobra.Command{
		Use:   "lesson <index|id>",
		Short: "Schedule a weekly lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in.Ref = args[0]
			return withStore(c, app, func(ctx context.Context, a *App, s *Store) error {
				t, err := command.NewAddLessonHandler(a.commandDeps(s)).Handle(ctx, in)
				if err != nil {
					return err
				}
				return printTutee(c, outputText, t)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Subject, "subject", "s", "", "subject")
	f.StringVarP(&in.Day, "day", "d", "", "day of week, e.g. MONDAY")
	f.StringVar(&in.Start, "start", "", "start time, HH:mm")
	f.StringVar(&in.End, "end", "", "end time, HH:mm")
	for _, name := range []string{"subject", "day", "start", "end"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func tuteePaymentCmd(app func() *App) *cobra.Command {
	var in command.UpdatePaymentCommand

	cmd := &cobra.Command{
		Use:   "payment <index|id>",
		Short: "Add a fee to the balance and/or set the pay-by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in.Ref = args[0]
			return withStore(c, app, func(ctx context.Context, a *App, s *Store) error {
				t, err := command.NewUpdatePaymentHandler(a.commandDeps(s)).Handle(ctx, in)
				if err != nil {
					return err
				}
				return printTutee(c, outputText, t)
			})
		},
	}

	cmd.Flags().StringVar(&in.Amount, "amount", "", "fee to add, e.g. 40.50")
	cmd.Flags().StringVar(&in.PayByDate, "pay-by", "", `pay-by date as dd-MM-yyyy, or "-" to clear`)
	return cmd
}

func tuteePaidCmd(app func() *App) *cobra.Command {
	var in command.RecordPaymentCommand

	cmd := &cobra.Command{
		Use:   "paid <index|id>",
		Short: "Record a payment received",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in.Ref = args[0]
			return withStore(c, app, func(ctx context.Context, a *App, s *Store) error {
				t, err := command.NewRecordPaymentHandler(a.commandDeps(s)).Handle(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "Recorded $%s from %s\n", in.Amount, t.Name)
				return printTutee(c, outputText, t)
			})
		},
	}

	cmd.Flags().StringVar(&in.Amount, "amount", "", "amount received")
	cmd.Flags().StringVar(&in.PayByDate, "pay-by", "", "next pay-by date as dd-MM-yyyy")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
