package helix

import (
	"context"
	"errors"
	"iter"
)

// Pager walks a paginated request one call at a time, feeding each
// response's cursor into the next call. It is sequential by construction
// and must not be shared between goroutines.
type Pager[T any] struct {
	client  *Client
	next    PaginatedRequest
	done    bool
	started bool
	calls   int
}

// NewPager creates a Pager starting at req. The cursor already set on req,
// if any, is used for the first call.
func NewPager[T any](c *Client, req PaginatedRequest) *Pager[T] {
	return &Pager[T]{client: c, next: req}
}

// Next fetches the next page. It returns ErrNoNextPage once the previous
// response carried no cursor or an empty one. A failed call leaves the pager
// where it was, so the caller may decide to try again.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, ErrNoNextPage
	}

	p.calls++
	resp, err := Do[[]T](ctx, p.client, p.next)
	if err != nil {
		return nil, err
	}

	if resp.Pagination == nil || *resp.Pagination == "" {
		p.done = true
	} else {
		p.next = p.next.WithCursor(*resp.Pagination)
	}

	return resp.Data, nil
}

// All returns the items of every remaining page as a lazy sequence. A page
// is only requested once the items before it have been consumed. The
// sequence can be ranged over once; a second range yields ErrPagerConsumed.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if p.started {
			yield(zero, ErrPagerConsumed)
			return
		}
		p.started = true

		for {
			items, err := p.Next(ctx)
			if errors.Is(err, ErrNoNextPage) {
				return
			}
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Collect drains the pager into a slice.
func (p *Pager[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for item, err := range p.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Calls reports how many calls the pager has issued.
func (p *Pager[T]) Calls() int {
	return p.calls
}
