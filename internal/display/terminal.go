// Package display renders likestats reports for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gauthierbraillon/likestats/internal/aggregator"
	"github.com/gauthierbraillon/likestats/internal/stats"
	"github.com/gauthierbraillon/likestats/internal/youtube"
)

const (
	separator   = " • "
	maxTitleLen = 60
)

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be 'text' or 'json'", s)
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// TerminalFormatter formats statistics for display.
type TerminalFormatter struct {
	top int
}

// NewTerminalFormatter returns a formatter that prints at most top lines per
// histogram. top <= 0 prints every line.
func NewTerminalFormatter(top int) *TerminalFormatter {
	return &TerminalFormatter{top: top}
}

// Write renders s to w in the requested format.
func (f *TerminalFormatter) Write(w io.Writer, s *stats.Statistics, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatText, "":
		_, err := io.WriteString(w, f.FormatStatistics(s))
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// FormatStatistics renders the full text report.
func (f *TerminalFormatter) FormatStatistics(s *stats.Statistics) string {
	if s == nil {
		return "No statistics to display.\n"
	}

	sections := []string{
		f.formatLikedSongs(s.LikedSongs),
		f.formatCategories(s.AllCategoriesMap),
		f.FormatHistogram("Categories", s.CategoriesHistogram),
		f.FormatHistogram("Categories since "+s.Cutoff.Format("Jan 2, 2006"), s.CategoriesHistogramLastMonth),
		f.FormatHistogram("Favourite channels", s.FavouriteChannels),
		f.FormatHistogram("Favourite channels since "+s.Cutoff.Format("Jan 2, 2006"), s.FavouriteChannelsLastMonth),
	}

	return strings.Join(sections, "\n")
}

func (f *TerminalFormatter) formatLikedSongs(records []youtube.VideoRecord) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Liked videos (%d)", len(records))))
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(dimStyle.Render("  No liked videos."))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range records {
		b.WriteString("  ")
		b.WriteString(f.FormatVideo(r))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatVideo renders one liked video on a single line.
func (f *TerminalFormatter) FormatVideo(r youtube.VideoRecord) string {
	title := f.TruncateText(aggregator.Of(r.Title).String(), maxTitleLen)
	parts := []string{title, aggregator.Of(r.ChannelTitle).String()}

	if published, err := r.PublishedTime(); err == nil {
		parts = append(parts, f.FormatTimestamp(published))
	}

	return strings.Join(parts, dimStyle.Render(separator))
}

func (f *TerminalFormatter) formatCategories(categories stats.CategoryMap) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Categories map"))
	b.WriteString("\n")

	if len(categories) == 0 {
		b.WriteString(dimStyle.Render("  No categories."))
		b.WriteString("\n")
		return b.String()
	}

	for _, id := range slices.Sorted(maps.Keys(categories)) {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(id+":"), categories[id])
	}
	return b.String()
}

// FormatHistogram renders a ranking, one "count value" line per entry.
func (f *TerminalFormatter) FormatHistogram(title string, entries []aggregator.Entry) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(dimStyle.Render("  Nothing to rank."))
		b.WriteString("\n")
		return b.String()
	}

	shown := entries
	if f.top > 0 && len(shown) > f.top {
		shown = shown[:f.top]
	}

	width := len(fmt.Sprint(entries[0].Count))
	for _, e := range shown {
		count := countStyle.Render(fmt.Sprintf("%*d", width, e.Count))
		fmt.Fprintf(&b, "  %s  %s\n", count, e.Value)
	}

	if hidden := len(entries) - len(shown); hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTimestamp formats a timestamp relative to now.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText shortens text to maxLen runes, ending in "..." when cut.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
