package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/localelint/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	passStyle    = lipgloss.NewStyle().Foreground(success)
	failStyle    = lipgloss.NewStyle().Foreground(danger)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle    = lipgloss.NewStyle().Foreground(accent)
	hintStyle    = lipgloss.NewStyle().Foreground(warning).Italic(true)
	bannerOK     = lipgloss.NewStyle().Bold(true).Foreground(success)
	bannerFailed = lipgloss.NewStyle().Bold(true).Foreground(danger)
)

// RenderRun formats the progress lines of a run for stdout: one block per
// candidate that was read, then the success banner when the run passed.
func RenderRun(result *domain.RunResult) string {
	var b strings.Builder

	if result.Report.Valid && len(result.Files) == 0 {
		for _, msg := range result.Report.Errors {
			b.WriteString(dimStyle.Render(msg) + "\n")
		}
		return b.String()
	}

	for _, o := range result.Outcomes {
		if _, missing := o.(domain.MissingDocument); missing {
			continue
		}

		file := o.FileID()
		line := fmt.Sprintf("\nValidating %s...", fileStyle.Render(file))
		if info, ok := domain.LocaleOf(file); ok && info.Name != "" {
			line += " " + dimStyle.Render("("+info.Name+")")
		}
		b.WriteString(line + "\n")

		if _, parsed := o.(domain.StructuralResult); parsed {
			b.WriteString(passStyle.Render("✓") + fmt.Sprintf(" %s is valid %s\n", file, domain.FormatOf(file)))
		}
	}

	if result.Report.Valid {
		b.WriteString("\n" + bannerOK.Render("✅ All validations passed!") + "\n")
	}
	return b.String()
}

// RenderFailures formats the failure block for stderr. Empty when the run passed.
func RenderFailures(result *domain.RunResult) string {
	if result.Report.Valid {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + bannerFailed.Render("Validation failed:") + "\n")
	for _, msg := range result.Report.Errors {
		b.WriteString("❌ " + failStyle.Render(msg) + "\n")
	}

	for _, fh := range result.Hints() {
		for _, h := range fh.Hints {
			b.WriteString(hintStyle.Render(fmt.Sprintf("   hint: %s: %q may have been renamed to %q", fh.File, h.Missing, h.Extra)) + "\n")
		}
	}
	return b.String()
}

// RenderReport formats a persisted report for terminal output.
func RenderReport(report *domain.RunReport) string {
	if report == nil {
		return "  " + dimStyle.Render("No validation results found. Run `localelint check` first.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	status := bannerOK.Render("valid")
	if !report.Valid {
		status = bannerFailed.Render("invalid")
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", titleStyle.Render("Last run"), status))
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n")

	if len(report.Errors) == 0 {
		b.WriteString("  " + dimStyle.Render("no messages") + "\n")
		return b.String()
	}
	for _, msg := range report.Errors {
		b.WriteString("  • " + msg + "\n")
	}
	return b.String()
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		status := passStyle.Render("pass")
		if !e.Valid {
			status = failStyle.Render("fail")
		}

		line := fmt.Sprintf("  %s  %s  %s  %d files  %d errors",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			status,
			e.FilesChecked,
			e.ErrorCount,
		)

		if i > 0 {
			diff := e.ErrorCount - entries[i-1].ErrorCount
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	return b.String()
}
