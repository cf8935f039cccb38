package aggregator

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/likestats/internal/youtube"
)

// Histogram counts extract(r) over records, most frequent first.
//
// With since == nil every record counts, whatever its publish date. With a
// cutoff, only records whose publish date parses and is strictly after
// *since count; records without a usable date are logged and skipped.
func Histogram(records []youtube.VideoRecord, extract Extractor, since *time.Time, logger *zap.Logger) []Entry {
	if logger == nil {
		logger = zap.NewNop()
	}

	values := make([]Value, 0, len(records))
	for _, record := range records {
		if since != nil && !publishedAfter(record, *since, logger) {
			continue
		}
		values = append(values, extract(record))
	}

	return Rank(values)
}

// Ranked binds an extractor into a histogram function.
func Ranked(extract Extractor, logger *zap.Logger) func(records []youtube.VideoRecord, since *time.Time) []Entry {
	return func(records []youtube.VideoRecord, since *time.Time) []Entry {
		return Histogram(records, extract, since, logger)
	}
}

// Rank turns a list of values into a frequency ranking. Equal counts keep
// the order in which the values were first seen.
func Rank(values []Value) []Entry {
	index := make(map[Value]int, len(values))
	entries := make([]Entry, 0)

	for _, v := range values {
		if i, ok := index[v]; ok {
			entries[i].Count++
			continue
		}
		index[v] = len(entries)
		entries = append(entries, Entry{Value: v, Count: 1})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return entries
}

// Total sums the counts of a histogram.
func Total(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// MonthBefore returns t minus one calendar month. When the day does not
// exist in the previous month it is clamped to that month's last day.
func MonthBefore(t time.Time) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month-1, 1, 0, 0, 0, 0, t.Location())

	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func publishedAfter(record youtube.VideoRecord, since time.Time, logger *zap.Logger) bool {
	published, err := record.PublishedTime()
	if err != nil {
		title := "<untitled>"
		if record.Title != nil {
			title = *record.Title
		}
		logger.Error("Unparseable publish date, skipping video",
			zap.String("title", title),
			zap.Error(err))
		return false
	}
	return published.After(since)
}
