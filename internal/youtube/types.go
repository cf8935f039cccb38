// Package youtube provides a client for the YouTube Data API v3.
//
// This package enables likestats to:
// - List the authenticated user's liked videos, one page at a time
// - Resolve video category ids to their display names
// - Reduce raw API videos to the few fields the statistics need
package youtube

import (
	"errors"
	"fmt"
	"slices"
	"time"

	ytapi "google.golang.org/api/youtube/v3"
)

// ErrNoPublishDate is returned when a record carries no publish timestamp.
var ErrNoPublishDate = errors.New("video has no publish date")

// VideoRecord is a liked video reduced to the fields used downstream.
// A nil field (or nil Tags) means the API did not send it. The typed API
// structs decode a missing string as "", so an empty string is absent too.
type VideoRecord struct {
	PublishedAt  *string  `json:"publishedAt"`
	Title        *string  `json:"title"`
	ChannelTitle *string  `json:"channelTitle"`
	Tags         []string `json:"tags"`
	CategoryID   *string  `json:"categoryId"`
}

// Shape leaves out everything but the snippet fields we aggregate on.
// It never fails: missing data comes back as absent fields.
func Shape(item *ytapi.Video) VideoRecord {
	if item == nil || item.Snippet == nil {
		return VideoRecord{}
	}
	snippet := item.Snippet
	return VideoRecord{
		PublishedAt:  optional(snippet.PublishedAt),
		Title:        optional(snippet.Title),
		ChannelTitle: optional(snippet.ChannelTitle),
		Tags:         slices.Clone(snippet.Tags),
		CategoryID:   optional(snippet.CategoryId),
	}
}

// ShapeAll shapes every item of a videos.list page, preserving order.
func ShapeAll(items []*ytapi.Video) []VideoRecord {
	records := make([]VideoRecord, 0, len(items))
	for _, item := range items {
		records = append(records, Shape(item))
	}
	return records
}

// PublishedTime parses the record's publish timestamp (RFC 3339).
func (r VideoRecord) PublishedTime() (time.Time, error) {
	if r.PublishedAt == nil {
		return time.Time{}, ErrNoPublishDate
	}
	t, err := time.Parse(time.RFC3339, *r.PublishedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid publish date %q: %w", *r.PublishedAt, err)
	}
	return t, nil
}

// optional maps the API's omitted (empty) strings to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
