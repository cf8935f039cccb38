package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client, normally one from an oauth2 config.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a YouTube Data API client scoped to the calls likestats makes.
type Client struct {
	service    *ytapi.Service
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a YouTube API client. Without WithHTTPClient it uses
// http.DefaultClient, which only works against unauthenticated endpoints.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	serviceOpts := []option.ClientOption{option.WithHTTPClient(c.httpClient)}
	if c.baseURL != "" {
		endpoint := c.baseURL
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		serviceOpts = append(serviceOpts, option.WithEndpoint(endpoint))
	}

	service, err := ytapi.NewService(ctx, serviceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	c.service = service

	return c, nil
}

// ListLikedVideos returns one page of the user's liked videos.
// An empty pageToken requests the first page.
func (c *Client) ListLikedVideos(ctx context.Context, pageSize int64, pageToken string) (*ytapi.VideoListResponse, error) {
	call := c.service.Videos.List([]string{"snippet"}).
		MyRating("like").
		MaxResults(pageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	c.logger.Debug("Requesting liked videos page",
		zap.Int64("page_size", pageSize),
		zap.String("page_token", pageToken))

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, handleAPIError("videos.list", err)
	}
	return resp, nil
}

// LookupCategories fetches the categories with the given ids in one request.
// The ids travel as a single comma-joined id parameter.
func (c *Client) LookupCategories(ctx context.Context, ids []string) (*ytapi.VideoCategoryListResponse, error) {
	c.logger.Debug("Requesting video categories",
		zap.Strings("ids", ids))

	resp, err := c.service.VideoCategories.List([]string{"snippet"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, handleAPIError("videoCategories.list", err)
	}
	return resp, nil
}
