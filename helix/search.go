package helix

import (
	"context"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// SearchCategoriesRequest finds games and categories whose name matches a
// query.
type SearchCategoriesRequest struct {
	Query string        `url:"query"`
	After *types.Cursor `url:"after,omitempty"`
	First *int          `url:"first,omitempty"`
}

// NewSearchCategoriesRequest searches for q. first is the page size; zero
// leaves it to the server.
func NewSearchCategoriesRequest(q string, first int) *SearchCategoriesRequest {
	r := &SearchCategoriesRequest{Query: q}
	if first > 0 {
		r.First = &first
	}
	return r
}

func (r *SearchCategoriesRequest) Path() string { return "search/categories" }
func (r *SearchCategoriesRequest) Method() string { return http.MethodGet }
func (r *SearchCategoriesRequest) Scopes() []types.Scope { return nil }
func (r *SearchCategoriesRequest) Query() (url.Values, error) { return EncodeQuery(r) }

// WithCursor implements PaginatedRequest.
func (r *SearchCategoriesRequest) WithCursor(cursor types.Cursor) PaginatedRequest {
	next := *r
	next.After = cursorPtr(cursor)
	return &next
}

// Validate implements validation.Validatable.
func (r *SearchCategoriesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Query, validation.Required),
		validation.Field(&r.First, validation.Min(1), validation.Max(100)),
	)
}

// SearchService handles communication with the search related methods.
type SearchService struct {
	client *Client
}

// Categories fetches one page of matching categories.
func (s *SearchService) Categories(ctx context.Context, req *SearchCategoriesRequest) (*Response[[]types.TwitchCategory], error) {
	return Do[[]types.TwitchCategory](ctx, s.client, req)
}

// AllCategories returns a Pager over every category matching req.
func (s *SearchService) AllCategories(req *SearchCategoriesRequest) *Pager[types.TwitchCategory] {
	return NewPager[types.TwitchCategory](s.client, req)
}
