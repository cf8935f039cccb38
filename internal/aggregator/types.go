// Package aggregator ranks liked videos by a categorical value.
//
// This package enables likestats to:
// - Count how often each category or channel appears in a set of videos
// - Restrict the count to videos published after a cutoff date
// - Compute the "last month" cutoff with calendar arithmetic
package aggregator

import (
	"encoding/json"

	"github.com/gauthierbraillon/likestats/internal/youtube"
)

// Value is a counted value. The zero Value is the absent value, which is
// counted like any other.
type Value struct {
	Text    string
	Present bool
}

// Text returns a present Value.
func Text(s string) Value {
	return Value{Text: s, Present: true}
}

// Of converts an optional string into a Value.
func Of(s *string) Value {
	if s == nil {
		return Value{}
	}
	return Text(*s)
}

// String renders the absent value as "<none>".
func (v Value) String() string {
	if !v.Present {
		return "<none>"
	}
	return v.Text
}

// MarshalJSON writes the absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return []byte("null"), nil
	}
	return json.Marshal(v.Text)
}

// Entry is one line of a histogram. Count is always at least 1.
type Entry struct {
	Value Value `json:"value"`
	Count int   `json:"count"`
}

// Extractor picks the value to count from a record.
type Extractor func(youtube.VideoRecord) Value

// ChannelTitle counts videos per channel.
func ChannelTitle(r youtube.VideoRecord) Value {
	return Of(r.ChannelTitle)
}

// CategoryName counts videos per resolved category name. Records whose
// category is unknown or missing count as the absent value.
func CategoryName(categories map[string]string) Extractor {
	return func(r youtube.VideoRecord) Value {
		if r.CategoryID == nil {
			return Value{}
		}
		name, ok := categories[*r.CategoryID]
		if !ok {
			return Value{}
		}
		return Text(name)
	}
}
