package stats

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/gauthierbraillon/likestats/internal/aggregator"
	"github.com/gauthierbraillon/likestats/internal/youtube"
)

// Statistics is a snapshot of the user's liked videos and their rankings.
// It is filled once by New and must be treated as read-only afterwards.
type Statistics struct {
	LikedSongs                   []youtube.VideoRecord `json:"liked_songs"`
	AllCategoriesMap             CategoryMap           `json:"all_categories_map"`
	CategoriesHistogram          []aggregator.Entry    `json:"categories_histogram"`
	CategoriesHistogramLastMonth []aggregator.Entry    `json:"categories_histogram_last_month"`
	FavouriteChannels            []aggregator.Entry    `json:"favourite_channels"`
	FavouriteChannelsLastMonth   []aggregator.Entry    `json:"favourite_channels_last_month"`

	// Cutoff is the "last month" boundary the *LastMonth rankings used.
	Cutoff time.Time `json:"cutoff"`
}

type settings struct {
	logger *zap.Logger
	now    func() time.Time
}

// Option configures New.
type Option func(*settings)

// WithLogger sets the logger for the diagnostic stream.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to compute the last-month cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// New fetches every liked video, resolves their categories and computes the
// all-time and last-month rankings. A failed request aborts the whole build.
func New(ctx context.Context, api API, opts ...Option) (*Statistics, error) {
	cfg := settings{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	likedSongs, err := FetchAllLikedVideos(ctx, api, cfg.logger)
	if err != nil {
		return nil, err
	}

	categories, err := ResolveCategories(ctx, api, likedSongs, cfg.logger)
	if err != nil {
		return nil, err
	}

	s := &Statistics{
		LikedSongs:       likedSongs,
		AllCategoriesMap: categories,
		Cutoff:           aggregator.MonthBefore(cfg.now()),
	}

	byCategory := aggregator.Ranked(aggregator.CategoryName(categories), cfg.logger)
	byChannel := aggregator.Ranked(aggregator.ChannelTitle, cfg.logger)
	cutoff := s.Cutoff

	// Each goroutine writes its own field and only reads likedSongs.
	var wg conc.WaitGroup
	wg.Go(func() { s.CategoriesHistogram = byCategory(likedSongs, nil) })
	wg.Go(func() { s.CategoriesHistogramLastMonth = byCategory(likedSongs, &cutoff) })
	wg.Go(func() { s.FavouriteChannels = byChannel(likedSongs, nil) })
	wg.Go(func() { s.FavouriteChannelsLastMonth = byChannel(likedSongs, &cutoff) })
	wg.Wait()

	cfg.logger.Info("Statistics ready",
		zap.Int("liked_videos", len(likedSongs)),
		zap.Int("categories", len(categories)),
		zap.Time("cutoff", cutoff))

	return s, nil
}
