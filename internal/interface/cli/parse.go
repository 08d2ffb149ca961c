package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// fieldParser converts the positional arguments of "parse <field>" into the
// text printed on success.
type fieldParser struct {
	args  string
	exact int // required argument count; zero joins all arguments into one
	run   func(p *parser.Parser, args []string) (string, error)
}

func joined(fn func(string) (fmt.Stringer, error)) func(*parser.Parser, []string) (string, error) {
	return func(_ *parser.Parser, args []string) (string, error) {
		v, err := fn(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		return v.String(), nil
	}
}

var fieldParsers = map[string]fieldParser{
	"index": {args: "<index>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseIndex(s)
	})},
	"name": {args: "<name>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseName(s)
	})},
	"phone": {args: "<phone>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParsePhone(s)
	})},
	"address": {args: "<address>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseAddress(s)
	})},
	"level": {args: "<level>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseLevel(s)
	})},
	"tag": {args: "<tag>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseTag(s)
	})},
	"subject": {args: "<subject>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseSubject(s)
	})},
	"day": {args: "<DAY>", run: joined(func(s string) (fmt.Stringer, error) {
		return parser.ParseDayOfWeek(s)
	})},
	"tags": {args: "<tag>...", run: func(_ *parser.Parser, args []string) (string, error) {
		set, err := parser.ParseTags(args)
		if err != nil {
			return "", err
		}
		return "[" + strings.Join(set.Strings(), ", ") + "]", nil
	}},
	"amount": {args: "<amount>", run: func(_ *parser.Parser, args []string) (string, error) {
		return parser.ParsePaymentAmount(strings.Join(args, " "))
	}},
	"time": {args: "<DAY> <start> <end>", exact: 3, run: func(p *parser.Parser, args []string) (string, error) {
		t, err := p.ParseTime(args[0], args[1], args[2])
		if err != nil {
			return "", err
		}
		return t.String(), nil
	}},
	"lesson": {args: "<DAY> <start> <end> <subject>", exact: 4, run: func(p *parser.Parser, args []string) (string, error) {
		l, err := p.ParseLesson(args[0], args[1], args[2], args[3])
		if err != nil {
			return "", err
		}
		return l.String(), nil
	}},
	"paybydate": {args: "<dd-MM-yyyy|->", run: func(p *parser.Parser, args []string) (string, error) {
		d, err := p.ParsePayByDate(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		if d.IsZero() {
			return tutee.NoPayByDate, nil
		}
		return timeutil.FormatDate(d), nil
	}},
	"payment": {args: "<amount> <dd-MM-yyyy|->", exact: 2, run: func(p *parser.Parser, args []string) (string, error) {
		pay, err := p.ParsePayment(args[0], args[1])
		if err != nil {
			return "", err
		}
		return pay.String(), nil
	}},
}

func parseCmd(app func() *App) *cobra.Command {
	names := make([]string, 0, len(fieldParsers))
	for name := range fieldParsers {
		names = append(names, name)
	}
	sort.Strings(names)

	var usage strings.Builder
	for _, name := range names {
		fmt.Fprintf(&usage, "  %-10s %s\n", name, fieldParsers[name].args)
	}

	return &cobra.Command{
		Use:       "parse <field> <args...>",
		Short:     "Validate a single value the way tutee commands do",
		Long:      "Validate a single value and print it, or print why it is rejected.\n\nFields:\n" + usage.String(),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: names,
		RunE: func(c *cobra.Command, args []string) error {
			fp, ok := fieldParsers[args[0]]
			if !ok {
				return fmt.Errorf("unknown field %q (valid: %s)", args[0], strings.Join(names, ", "))
			}
			rest := args[1:]
			if fp.exact > 0 && len(rest) != fp.exact {
				return fmt.Errorf("parse %s: expected %s", args[0], fp.args)
			}

			out, err := fp.run(app().Parser, rest)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), out)
			return nil
		},
	}
}
