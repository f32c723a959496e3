package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tqc/internal/domain"
)

type entryKind int

const (
	entryResolved entryKind = iota
	entryUnresolved
	entryFileError
)

// entry is one line of the attachment viewer
type entry struct {
	kind    entryKind
	path    string
	message string
}

func buildEntries(report *domain.BatchReport, filter entryKind, all bool) []entry {
	var entries []entry
	add := func(kind entryKind, path, message string) {
		if all || kind == filter {
			entries = append(entries, entry{kind: kind, path: path, message: message})
		}
	}
	for _, p := range report.Resolved {
		add(entryResolved, p, "")
	}
	for _, p := range report.Unresolved {
		add(entryUnresolved, p, "")
	}
	for _, fe := range report.FileErrors {
		add(entryFileError, fe.Path, fe.Message)
	}
	return entries
}

func (e entry) listText(number int) string {
	switch e.kind {
	case entryResolved:
		return fmt.Sprintf("[green]✓ [yellow]%d.[white] %s", number, e.path)
	case entryUnresolved:
		return fmt.Sprintf("[yellow]? %d.[white] %s", number, e.path)
	default:
		return fmt.Sprintf("[red]✗ [yellow]%d.[white] %s", number, e.path)
	}
}

// details describes the entry using tview color tags
func (e entry) details() string {
	var b strings.Builder
	switch e.kind {
	case entryResolved:
		fmt.Fprintf(&b, "[green]Resolved attachment[white]\n\n")
	case entryUnresolved:
		fmt.Fprintf(&b, "[yellow]Unresolved attachment[white]\n\n")
	default:
		fmt.Fprintf(&b, "[red]Unreadable report[white]\n\n")
	}
	fmt.Fprintf(&b, "[cyan]Path:[white] %s\n", tview.Escape(e.path))

	if e.message != "" {
		fmt.Fprintf(&b, "\n[yellow]Error:[white]\n%s\n", tview.Escape(e.message))
		return b.String()
	}

	info, err := os.Stat(e.path)
	if err != nil {
		fmt.Fprintf(&b, "[gray]Not found on disk[white]\n")
		return b.String()
	}
	fmt.Fprintf(&b, "[cyan]Size:[white] %d bytes\n", info.Size())
	fmt.Fprintf(&b, "[cyan]Modified:[white] %s\n", info.ModTime().Format("2006-01-02 15:04:05"))
	return b.String()
}

// AttachmentViewer browses the last batch report in a TUI
type AttachmentViewer struct{}

// NewAttachmentViewer creates a new AttachmentViewer
func NewAttachmentViewer() *AttachmentViewer {
	return &AttachmentViewer{}
}

// View displays the report. Keys: a/r/u/e switch between all, resolved,
// unresolved and report errors; q or Ctrl+C exits.
func (v *AttachmentViewer) View(report *domain.BatchReport) error {
	if len(report.Resolved)+len(report.Unresolved)+len(report.FileErrors) == 0 {
		color.Yellow("No attachments in the last batch")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	detailsView.SetBorder(true).SetTitle(" Details ")

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	var entries []entry
	title := "All"

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			detailsView.SetText(entries[index].details())
		} else {
			detailsView.SetText("")
		}
	}

	load := func(kind entryKind, all bool, name string) {
		entries = buildEntries(report, kind, all)
		title = name
		list.Clear()
		for i, e := range entries {
			list.AddItem(e.listText(i+1), "", 0, nil)
		}
		headerView.SetText(fmt.Sprintf(" %s (%d) | [green]%d[white] resolved, [yellow]%d[white] unresolved, [red]%d[white] report errors | a/r/u/e filter, q to exit ",
			title, len(entries), len(report.Resolved), len(report.Unresolved), len(report.FileErrors)))
		updateDetails()
	}

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			app.Stop()
			return nil
		}
		if event.Key() != tcell.KeyRune {
			return event
		}
		switch event.Rune() {
		case 'q', 'Q':
			app.Stop()
		case 'a':
			load(entryResolved, true, "All")
		case 'r':
			load(entryResolved, false, "Resolved")
		case 'u':
			load(entryUnresolved, false, "Unresolved")
		case 'e':
			load(entryFileError, false, "Report errors")
		default:
			return event
		}
		return nil
	})

	load(entryResolved, true, title)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 1, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
