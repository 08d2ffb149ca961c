package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tracko-hub/tracko/internal/application/query"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

// ══════════════════════════════════════════════════════════════════════════════
// TUTEE PRESENTER
// Renders tutee views for the terminal.
// ══════════════════════════════════════════════════════════════════════════════

// FormatTutee renders a single tutee card.
func FormatTutee(v query.TuteeView) string {
	var sb strings.Builder

	if v.Index > 0 {
		fmt.Fprintf(&sb, "%d. ", v.Index)
	}
	sb.WriteString(v.Name)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "  ID:      %s\n", v.ID)
	fmt.Fprintf(&sb, "  Phone:   %s\n", v.Phone)
	fmt.Fprintf(&sb, "  Address: %s\n", v.Address)
	fmt.Fprintf(&sb, "  Level:   %s (%s)\n", strings.ToUpper(v.Level), v.Stage)
	if len(v.Tags) > 0 {
		fmt.Fprintf(&sb, "  Tags:    [%s]\n", strings.Join(v.Tags, "] ["))
	}

	if len(v.Lessons) == 0 {
		sb.WriteString("  Lessons: none\n")
	} else {
		sb.WriteString("  Lessons:\n")
		for _, l := range v.Lessons {
			fmt.Fprintf(&sb, "    - %s\n", l)
		}
	}

	fmt.Fprintf(&sb, "  Payment: $%s (Last paid on: %s)\n", v.Payment, v.LastPaid)
	fmt.Fprintf(&sb, "  Overdue: %s\n", v.OverdueStatus)

	return sb.String()
}

// FormatTuteeLine renders the one-line list entry.
func FormatTuteeLine(v query.TuteeView) string {
	line := fmt.Sprintf("%d. %s  %s  $%s", v.Index, v.Name, strings.ToUpper(v.Level), v.Payment)
	if v.Overdue {
		line += "  OVERDUE since " + v.PayByDate
	}
	return line
}

func writeViews(w io.Writer, format string, views []query.TuteeView, line bool) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(views) == 1 && !line {
			return enc.Encode(views[0])
		}
		return enc.Encode(views)
	}

	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "(no tutees)")
		return err
	}
	for _, v := range views {
		out := FormatTutee(v)
		if line {
			out = FormatTuteeLine(v) + "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
