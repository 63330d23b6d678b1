package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
)

var (
	successColor = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	errorColor   = lipgloss.Color("#e53935")
	mutedColor   = lipgloss.Color("#6b7280")
)

// ReportStyles holds the styles used to render an update report.
type ReportStyles struct {
	Applied lipgloss.Style
	Heading lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultReportStyles returns the styles used by the CLI.
func DefaultReportStyles() ReportStyles {
	return ReportStyles{
		Applied: lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true),
		Heading: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1),
		Warning: lipgloss.NewStyle().
			Foreground(warningColor).
			PaddingLeft(2),
		Error: lipgloss.NewStyle().
			Foreground(errorColor).
			PaddingLeft(2),
		Muted: lipgloss.NewStyle().
			Foreground(mutedColor),
	}
}

// RenderReport writes a human-readable summary of r: the applied count,
// then warnings, then errors.
func RenderReport(w io.Writer, r *models.Report, styles ReportStyles) error {
	var sb strings.Builder

	sb.WriteString(styles.Applied.Render(fmt.Sprintf("Updates applied: %d", r.UpdatesApplied)))
	sb.WriteString("\n")
	if r.OutputPath != "" {
		sb.WriteString(styles.Muted.Render("Saved to " + r.OutputPath))
		sb.WriteString("\n")
	}

	writeList(&sb, fmt.Sprintf("Warnings (%d)", len(r.Warnings)), r.Warnings, styles.Heading, styles.Warning)
	writeList(&sb, fmt.Sprintf("Errors (%d)", len(r.Errors)), r.Errors, styles.Heading, styles.Error)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeList(sb *strings.Builder, title string, items []string, heading, item lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading.Render(title))
	sb.WriteString("\n")
	for _, it := range items {
		sb.WriteString(item.Render("- " + it))
		sb.WriteString("\n")
	}
}
