// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"taskmgr/internal/service"
)

// Format names accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// descIndent aligns the description under the title.
const descIndent = "              "

// ValidFormat reports whether name is a known format.
func ValidFormat(name string) bool {
	switch name {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// WriteTasks writes tasks in the named format.
func WriteTasks(w io.Writer, format string, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		if len(tasks) == 0 {
			fmt.Fprintln(w, "no tasks found")
			return nil
		}
		for _, t := range tasks {
			FormatTask(w, t)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// FormatTask formats one task.
// Format: "{ID:>4}  [{P:>2}]  {TITLE}\n" followed by the description on an
// indented line when present.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  [%2d]  %s\n", task.ID, task.Priority, normalizeTitle(task.Title))
	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "%s%s\n", descIndent, desc)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
