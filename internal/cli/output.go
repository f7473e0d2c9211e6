package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tracker-client/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// formatDuration renders d as "1h 05m", or "5m" under an hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

// swatch renders a colored block for a project color, or nothing when the
// color is unset.
func swatch(color string) string {
	if color == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

func printProjects(w io.Writer, projects []domain.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No projects found"))
		return
	}
	for _, p := range projects {
		fmt.Fprintf(w, "%4d %s %s %s\n", p.ID, swatch(p.Color), p.Name, mutedStyle.Render(p.Color))
	}
}

func printTags(w io.Writer, tags []domain.Tag) {
	if len(tags) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tags found"))
		return
	}
	for _, t := range tags {
		fmt.Fprintf(w, "%4d #%s\n", t.ID, t.Name)
	}
}

func printTasks(w io.Writer, tasks []domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tasks found"))
		return
	}
	for _, t := range tasks {
		var details []string
		if t.ProjectName != "" {
			details = append(details, t.ProjectName)
		} else if t.Project == nil {
			details = append(details, "Inbox")
		}
		for _, name := range t.TagNames {
			details = append(details, "#"+name)
		}
		if t.EstimateMinutes != nil {
			details = append(details, fmt.Sprintf("est. %s", formatDuration(time.Duration(*t.EstimateMinutes)*time.Minute)))
		}
		details = append(details, formatDuration(time.Duration(t.DurationSeconds)*time.Second))

		indent := strings.Repeat("  ", t.Level)
		fmt.Fprintf(w, "%4d %s%s %s\n", t.ID, indent, t.Name, mutedStyle.Render("("+strings.Join(details, ", ")+")"))
	}
}

func (a *App) printEntries(w io.Writer, entries []domain.TimeEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No time entries found"))
		return
	}
	now := timeNow()
	for _, e := range entries {
		end := runningStyle.Render("running")
		if e.EndTime != nil {
			end = a.formatTime(*e.EndTime)
		}
		fmt.Fprintf(w, "%4d %s - %s (%s): %s\n", e.ID, a.formatTime(e.StartTime), end, formatDuration(e.Duration(now)), entryLabel(e))
	}
}

// entryLabel names an entry by its task, then its own name.
func entryLabel(e domain.TimeEntry) string {
	if e.TaskName != nil && *e.TaskName != "" {
		return *e.TaskName
	}
	if e.Name != nil && *e.Name != "" {
		return *e.Name
	}
	return mutedStyle.Render("(untitled)")
}
