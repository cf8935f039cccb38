// Package stats builds the liked-video statistics snapshot.
//
// The pipeline is strictly sequential: every liked video is fetched page by
// page, the categories seen in them are resolved in one lookup, and the
// histograms are computed over the result.
package stats

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/gauthierbraillon/likestats/internal/youtube"
)

// PageSize is the number of liked videos requested per page (API maximum).
const PageSize int64 = 50

// ErrPageLoop is returned when the API hands back a page token twice.
var ErrPageLoop = errors.New("pagination did not advance")

// API is the request/response boundary to the authenticated video platform.
// *youtube.Client implements it.
type API interface {
	ListLikedVideos(ctx context.Context, pageSize int64, pageToken string) (*ytapi.VideoListResponse, error)
	LookupCategories(ctx context.Context, ids []string) (*ytapi.VideoCategoryListResponse, error)
}

// FetchAllLikedVideos walks every page of liked videos and returns the shaped
// records in page order. Any request failure aborts the walk.
func FetchAllLikedVideos(ctx context.Context, api API, logger *zap.Logger) ([]youtube.VideoRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records := make([]youtube.VideoRecord, 0)
	seen := make(map[string]struct{})
	pageToken := ""

	for {
		resp, err := api.ListLikedVideos(ctx, PageSize, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch liked videos: %w", err)
		}
		if resp == nil {
			resp = &ytapi.VideoListResponse{}
		}

		batch := youtube.ShapeAll(resp.Items)
		records = append(records, batch...)
		logger.Info("Successfully received youtube liked videos list",
			zap.Int("received", len(batch)),
			zap.Int("total", len(records)))

		if resp.NextPageToken == "" {
			return records, nil
		}
		if _, dup := seen[resp.NextPageToken]; dup {
			return nil, fmt.Errorf("failed to fetch liked videos: token %q: %w", resp.NextPageToken, ErrPageLoop)
		}
		seen[resp.NextPageToken] = struct{}{}
		pageToken = resp.NextPageToken
	}
}
