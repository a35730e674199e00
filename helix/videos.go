package helix

import (
	"context"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// Video is a published video or VOD.
type Video struct {
	ID           types.VideoID      `json:"id"`
	StreamID     *types.StreamID    `json:"stream_id"`
	UserID       types.UserID       `json:"user_id"`
	UserLogin    types.UserName     `json:"user_login"`
	UserName     types.DisplayName  `json:"user_name"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	CreatedAt    time.Time          `json:"created_at"`
	PublishedAt  time.Time          `json:"published_at"`
	URL          string             `json:"url"`
	ThumbnailURL string             `json:"thumbnail_url"`
	Viewable     types.VideoPrivacy `json:"viewable"`
	ViewCount    int64              `json:"view_count"`
	Language     string             `json:"language"`
	Type         types.VideoType    `json:"type"`
	// ISO 8601 style duration such as "3m21s".
	Duration string `json:"duration"`
}

// Validate implements validation.Validatable.
func (v Video) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.ID, validation.Required),
		validation.Field(&v.UserID, validation.Required),
		validation.Field(&v.CreatedAt, validation.Required),
	)
}

// Video sort orders.
const (
	VideoSortTime     = "time"
	VideoSortTrending = "trending"
	VideoSortViews    = "views"
)

// GetVideosRequest lists videos by id, by user or by game. Exactly one of
// the three must be set; the filters only apply to user and game lookups.
type GetVideosRequest struct {
	ID       []types.VideoID    `url:"id,omitempty"`
	UserID   types.UserID       `url:"user_id,omitempty"`
	GameID   types.CategoryID   `url:"game_id,omitempty"`
	Language string             `url:"language,omitempty"`
	Period   *types.VideoPeriod `url:"period,omitempty"`
	Sort     string             `url:"sort,omitempty"`
	Type     *types.VideoType   `url:"type,omitempty"`
	After    *types.Cursor      `url:"after,omitempty"`
	First    *int               `url:"first,omitempty"`
}

// GetVideosOptions are the filters of GetVideosRequest.
type GetVideosOptions struct {
	Language string
	Period   types.VideoPeriod
	Sort     string
	// Zero means any type.
	Type  types.VideoType
	First int
}

// NewGetVideosByIDRequest looks up up to 100 videos by id.
func NewGetVideosByIDRequest(ids ...types.VideoID) *GetVideosRequest {
	return &GetVideosRequest{ID: ids}
}

// NewGetVideosByUserRequest lists the videos of userID. opts may be nil.
func NewGetVideosByUserRequest(userID types.UserID, opts *GetVideosOptions) *GetVideosRequest {
	r := &GetVideosRequest{UserID: userID}
	r.apply(opts)
	return r
}

// NewGetVideosByGameRequest lists the videos of a game. opts may be nil.
func NewGetVideosByGameRequest(gameID types.CategoryID, opts *GetVideosOptions) *GetVideosRequest {
	r := &GetVideosRequest{GameID: gameID}
	r.apply(opts)
	return r
}

func (r *GetVideosRequest) apply(opts *GetVideosOptions) {
	if opts == nil {
		return
	}
	r.Language = opts.Language
	r.Sort = opts.Sort
	if opts.Period != types.VideoPeriodAll {
		period := opts.Period
		r.Period = &period
	}
	if opts.Type != types.VideoTypeOther {
		typ := opts.Type
		r.Type = &typ
	}
	if opts.First > 0 {
		first := opts.First
		r.First = &first
	}
}

func (r *GetVideosRequest) Path() string { return "videos" }
func (r *GetVideosRequest) Method() string { return http.MethodGet }
func (r *GetVideosRequest) Scopes() []types.Scope { return nil }
func (r *GetVideosRequest) Query() (url.Values, error) { return EncodeQuery(r) }

// WithCursor implements PaginatedRequest.
func (r *GetVideosRequest) WithCursor(cursor types.Cursor) PaginatedRequest {
	next := *r
	next.After = cursorPtr(cursor)
	return &next
}

// Validate implements validation.Validatable.
func (r *GetVideosRequest) Validate() error {
	lookups := 0
	for _, set := range []bool{len(r.ID) > 0, r.UserID != "", r.GameID != ""} {
		if set {
			lookups++
		}
	}
	if lookups != 1 {
		return validation.NewError("validation_videos_lookup", "exactly one of id, user_id or game_id is required")
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Length(0, 100)),
		validation.Field(&r.Sort, validation.In(VideoSortTime, VideoSortTrending, VideoSortViews)),
		validation.Field(&r.First, validation.Min(1), validation.Max(100)),
	)
}

// VideosService handles communication with the video related methods.
type VideosService struct {
	client *Client
}

// Get fetches one page of videos.
func (s *VideosService) Get(ctx context.Context, req *GetVideosRequest) (*Response[[]Video], error) {
	return Do[[]Video](ctx, s.client, req)
}

// All returns a Pager over every video matching req.
func (s *VideosService) All(req *GetVideosRequest) *Pager[Video] {
	return NewPager[Video](s.client, req)
}
