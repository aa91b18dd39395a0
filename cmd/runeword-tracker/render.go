package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/rsned/runeword-tracker/pkg/tracker"
)

var (
	colorGold   = lipgloss.Color("#C7B377")
	colorGreen  = lipgloss.Color("#00C400")
	colorOrange = lipgloss.Color("#FFA800")
	colorGrey   = lipgloss.Color("#8A8A8A")
)

var styles = struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Complete lipgloss.Style
	High     lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(colorGold),
	Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
	Cell:     lipgloss.NewStyle().Padding(0, 1),
	Complete: lipgloss.NewStyle().Padding(0, 1).Foreground(colorGreen),
	High:     lipgloss.NewStyle().Padding(0, 1).Foreground(colorOrange),
	Muted:    lipgloss.NewStyle().Foreground(colorGrey),
	Border:   lipgloss.NewStyle().Foreground(colorGrey),
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

// runeList formats counts as "Ber x2, Ist".
func runeList(rcs []tracker.RuneCount) string {
	parts := make([]string, 0, len(rcs))
	for _, rc := range rcs {
		if rc.Quantity > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", rc.Rune, rc.Quantity))
		} else {
			parts = append(parts, rc.Rune)
		}
	}
	return strings.Join(parts, ", ")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(headers...)
}

func renderStatus(w io.Writer, resp *tracker.StatusResponse) {
	fmt.Fprintln(w, styles.Title.Render("Runewords"))
	if len(resp.Runewords) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("  none above "+percent(resp.Preferences.Threshold)))
	} else {
		words := resp.Runewords
		t := newTable("Name", "Runes", "Lvl", "Bases", "Progress").
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return styles.Header
				case col == 4 && words[row].Complete:
					return styles.Complete
				default:
					return styles.Cell
				}
			})
		for _, p := range words {
			t.Row(p.Name, p.Word, strconv.Itoa(p.Level), strings.Join(p.Types, ", "), percent(p.Progress))
		}
		fmt.Fprintln(w, t.String())
	}

	fmt.Fprintln(w, styles.Title.Render("Tossable"))
	if len(resp.Tossable) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("  nothing"))
	} else {
		fmt.Fprintln(w, "  "+runeList(resp.Tossable))
	}

	renderInventory(w, resp.Inventory)

	stats := resp.Stats
	footer := fmt.Sprintf("%d of %d runewords shown, %d complete, threshold %s, sorted by %s",
		stats.Shown, stats.CatalogSize, stats.Complete, percent(resp.Preferences.Threshold), resp.Preferences.Sort)
	if ts, err := time.Parse(time.RFC3339, stats.LastImport); err == nil {
		footer += ", catalog imported " + humanize.Time(ts)
	}
	fmt.Fprintln(w, styles.Muted.Render(footer))
}

func renderInventory(w io.Writer, inv tracker.InventoryResponse) {
	fmt.Fprintln(w, styles.Title.Render("Inventory"))
	if len(inv.Runes) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("  empty"))
		return
	}

	runes := inv.Runes
	t := newTable("Rune", "Qty", "Tier").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case runes[row].Tier == "high":
				return styles.High
			default:
				return styles.Cell
			}
		})
	for _, rc := range runes {
		t.Row(rc.Rune, humanize.Comma(int64(rc.Quantity)), rc.Tier)
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("%s runes, appraised at %s",
		humanize.Comma(int64(inv.Total)), humanize.Comma(int64(math.Round(inv.Appraisal))))))
}

func renderRunes(w io.Writer, verb string, resp *tracker.RunesResponse) {
	if len(resp.Applied) > 0 {
		fmt.Fprintf(w, "%s %s\n", verb, runeList(resp.Applied))
	} else {
		fmt.Fprintln(w, styles.Muted.Render(verb+" nothing"))
	}
	for _, r := range resp.Rejected {
		fmt.Fprintf(w, "skipped %q: %s\n", r.Input, r.Reason)
	}
	renderInventory(w, resp.Inventory)
}

func renderImport(w io.Writer, report *tracker.ImportReport) {
	fmt.Fprintf(w, "imported %d runewords from %s\n", report.Imported, report.Source)
	for _, r := range report.Skipped {
		fmt.Fprintf(w, "skipped %q: %s\n", r.Input, r.Reason)
	}
}

func renderInfo(w io.Writer, resp *tracker.RunewordInfoResponse) {
	p := resp.Runeword
	fmt.Fprintf(w, "%s %s\n", styles.Title.Render(p.Name), styles.Muted.Render("'"+p.Word+"'"))
	fmt.Fprintf(w, "  level %d, %d sockets: %s\n", p.Level, p.Sockets, strings.Join(p.Types, ", "))
	if resp.Description != "" {
		fmt.Fprintf(w, "  %s\n", resp.Description)
	}

	progress := percent(p.Progress)
	if p.Complete {
		progress = styles.Complete.UnsetPadding().Render("complete")
	}
	fmt.Fprintf(w, "  progress: %s\n", progress)
	if len(p.Missing) > 0 {
		fmt.Fprintf(w, "  missing: %s\n", runeList(p.Missing))
	}

	switch {
	case resp.Ignored:
		fmt.Fprintln(w, styles.Muted.Render("  ignored"))
	case !resp.Shown:
		fmt.Fprintln(w, styles.Muted.Render("  not shown at the current threshold or item type filters"))
	}
}
