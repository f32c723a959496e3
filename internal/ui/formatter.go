package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tqc/internal/domain"
)

// Output formats accepted by PrintReport
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintReport writes the batch report in the given format
func (f *Formatter) PrintReport(report *domain.BatchReport, format string) error {
	switch format {
	case "", FormatText:
		f.printText(report)
		return nil
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(f.out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(f.out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}
}

func (f *Formatter) printText(report *domain.BatchReport) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                    Attachment Resolution                      ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(f.out)

	evidence := report.EvidenceRoot
	if evidence == "" {
		evidence = "(none)"
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Report Files", color.WhiteString("%-27d", len(report.XMLFiles)))
	f.separator()
	f.row("Resolved Attachments", color.GreenString("%-27d", len(report.Resolved)))
	f.separator()
	f.row("Unresolved Attachments", color.YellowString("%-27d", len(report.Unresolved)))
	f.separator()
	f.row("Unreadable Reports", color.RedString("%-27d", len(report.FileErrors)))
	f.separator()
	f.row("Evidence Directory", color.WhiteString("%-27s", truncate(evidence, 27)))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.out)

	if len(report.Resolved) > 0 {
		fmt.Fprintln(f.out, color.GreenString("Resolved attachments:"))
		f.printTree(report.Resolved, report.EvidenceRoot)
		fmt.Fprintln(f.out)
	}

	if len(report.Unresolved) > 0 {
		fmt.Fprintln(f.out, color.YellowString("Unresolved attachments:"))
		for _, p := range report.Unresolved {
			fmt.Fprintf(f.out, "  %s %s\n", color.YellowString("?"), p)
		}
		fmt.Fprintln(f.out)
	}

	for _, fe := range report.FileErrors {
		fmt.Fprintf(f.out, "%s %s: %s\n", color.RedString("✗"), fe.Path, fe.Message)
	}
}

func (f *Formatter) row(label, value string) {
	fmt.Fprintf(f.out, "│ %-31s │ %s │\n", label, value)
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// printTree prints paths grouped by directory, relative to root when below it
func (f *Formatter) printTree(paths []string, root string) {
	groups := make(map[string][]string)
	for _, p := range paths {
		display := p
		if root != "" {
			if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
				display = rel
			}
		}
		dir := filepath.Dir(display)
		groups[dir] = append(groups[dir], filepath.Base(display))
	}

	var dirs []string
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for i, dir := range dirs {
		isLastDir := i == len(dirs)-1
		if isLastDir {
			fmt.Fprintln(f.out, color.CyanString("└── %s", dir))
		} else {
			fmt.Fprintln(f.out, color.CyanString("├── %s", dir))
		}

		files := groups[dir]
		for j, file := range files {
			var prefix string
			switch {
			case isLastDir && j == len(files)-1:
				prefix = "    └── "
			case isLastDir:
				prefix = "    ├── "
			case j == len(files)-1:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, file)
		}
	}
}

// PrintHistory prints ledger rows, newest first
func (f *Formatter) PrintHistory(batches []domain.BatchSummary) {
	if len(batches) == 0 {
		fmt.Fprintln(f.out, color.YellowString("No batches recorded"))
		return
	}

	fmt.Fprintf(f.out, "%-36s  %-20s  %7s  %8s  %10s  %6s  %s\n",
		"ID", "CREATED", "REPORTS", "RESOLVED", "UNRESOLVED", "ERRORS", "UPLOADED")
	for _, b := range batches {
		uploaded := color.YellowString("no")
		if b.Uploaded {
			uploaded = color.GreenString("yes")
		}
		fmt.Fprintf(f.out, "%-36s  %-20s  %7d  %8d  %10d  %6d  %s\n",
			b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			b.XMLFiles, b.Resolved, b.Unresolved, b.FileErrors, uploaded)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
