// Package contracts holds recorded YouTube Data API v3 and OAuth payloads.
// Tests decode them into the generated API types and replay them against
// the real clients, so a drift in the wire format shows up in one place.
package contracts

// LikedVideosFirstPage is a videos.list?myRating=like page with a
// continuation token. The second item has no tags and the third no category.
const LikedVideosFirstPage = `{
  "kind": "youtube#videoListResponse",
  "etag": "etag-page-1",
  "nextPageToken": "CAIQAA",
  "pageInfo": {"totalResults": 4, "resultsPerPage": 3},
  "items": [
    {
      "kind": "youtube#video",
      "etag": "etag-1",
      "id": "dQw4w9WgXcQ",
      "snippet": {
        "publishedAt": "2009-10-25T06:57:33Z",
        "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw",
        "title": "Never Gonna Give You Up",
        "description": "The official video",
        "channelTitle": "Rick Astley",
        "tags": ["rick astley", "80s"],
        "categoryId": "10",
        "liveBroadcastContent": "none",
        "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120, "height": 90}},
        "localized": {"title": "Never Gonna Give You Up", "description": "The official video"}
      }
    },
    {
      "kind": "youtube#video",
      "etag": "etag-2",
      "id": "9bZkp7q19f0",
      "snippet": {
        "publishedAt": "2012-07-15T07:46:32Z",
        "channelId": "UCrDkAvwZum-UTjHmzDI2iIw",
        "title": "Gangnam Style",
        "channelTitle": "officialpsy",
        "categoryId": "10"
      }
    },
    {
      "kind": "youtube#video",
      "etag": "etag-3",
      "id": "abc123",
      "snippet": {
        "publishedAt": "2023-02-01T12:00:00Z",
        "title": "Speedrun world record",
        "channelTitle": "GameChan",
        "tags": []
      }
    }
  ]
}`

// LikedVideosLastPage ends the listing: it carries no nextPageToken.
const LikedVideosLastPage = `{
  "kind": "youtube#videoListResponse",
  "etag": "etag-page-2",
  "prevPageToken": "CAIQAQ",
  "pageInfo": {"totalResults": 4, "resultsPerPage": 3},
  "items": [
    {
      "kind": "youtube#video",
      "etag": "etag-4",
      "id": "def456",
      "snippet": {
        "publishedAt": "2023-02-02T12:00:00Z",
        "title": "Any% glitchless",
        "channelTitle": "GameChan",
        "categoryId": "20"
      }
    }
  ]
}`

// VideoCategories answers videoCategories.list?id=10,20.
const VideoCategories = `{
  "kind": "youtube#videoCategoryListResponse",
  "etag": "etag-categories",
  "items": [
    {
      "kind": "youtube#videoCategory",
      "etag": "etag-10",
      "id": "10",
      "snippet": {"channelId": "UCBR8-60-B28hp2BmDPdntcQ", "title": "Music", "assignable": true}
    },
    {
      "kind": "youtube#videoCategory",
      "etag": "etag-20",
      "id": "20",
      "snippet": {"channelId": "UCBR8-60-B28hp2BmDPdntcQ", "title": "Gaming", "assignable": true}
    }
  ]
}`

// APIError is the error envelope Google APIs return with a non-2xx status.
const APIError = `{
  "error": {
    "code": 403,
    "message": "The request cannot be completed because you have exceeded your quota.",
    "errors": [{"message": "quota exceeded", "domain": "youtube.quota", "reason": "quotaExceeded"}]
  }
}`

// OAuthToken is a token endpoint response per RFC 6749 section 5.1.
const OAuthToken = `{
  "access_token": "ya29.a0AfH6SMBx",
  "expires_in": 3599,
  "refresh_token": "1//0e-refresh",
  "scope": "https://www.googleapis.com/auth/youtube.readonly",
  "token_type": "Bearer"
}`
