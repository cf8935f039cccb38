package stats

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/likestats/internal/youtube"
)

// CategoryMap maps a category id to its display name.
type CategoryMap map[string]string

// ResolveCategories looks up, in a single request, the names of every
// category id present in records. Category bodies without an id or a title
// are logged and left out of the map.
func ResolveCategories(ctx context.Context, api API, records []youtube.VideoRecord, logger *zap.Logger) (CategoryMap, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	categories := make(CategoryMap)
	ids := distinctCategoryIDs(records)
	if len(ids) == 0 {
		logger.Info("No categories to resolve")
		return categories, nil
	}

	resp, err := api.LookupCategories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	if resp == nil {
		return categories, nil
	}

	logger.Info("Successfully received categories",
		zap.Int("requested", len(ids)),
		zap.Int("received", len(resp.Items)))

	for i, category := range resp.Items {
		if category == nil || category.Id == "" || category.Snippet == nil || category.Snippet.Title == "" {
			id := ""
			if category != nil {
				id = category.Id
			}
			logger.Error("Incorrect category body",
				zap.Int("index", i),
				zap.String("id", id))
			continue
		}
		categories[category.Id] = category.Snippet.Title
	}

	return categories, nil
}

// distinctCategoryIDs returns the sorted set of category ids, skipping
// records that carry none.
func distinctCategoryIDs(records []youtube.VideoRecord) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		if r.CategoryID != nil {
			set[*r.CategoryID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
