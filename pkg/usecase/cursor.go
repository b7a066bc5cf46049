package usecase

import (
	"context"
	"iter"

	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
)

// Cursor lazily walks the pages of one search query. A page is fetched only when the
// buffered items of the previous one have been consumed. The walk ends after a short
// page or after model.PageCeiling pages. A Cursor must not be used concurrently.
type Cursor[Q, T any] struct {
	query     Q
	fetcher   interfaces.PageFetcher[Q, T]
	page      int
	buffer    []T
	exhausted bool
	last      *model.Page[T]
	err       error
}

// Paginate returns a cursor over the results of q. Nothing is fetched until Next is
// called.
func Paginate[Q, T any](q Q, fetcher interfaces.PageFetcher[Q, T]) *Cursor[Q, T] {
	return &Cursor[Q, T]{
		query:   q,
		fetcher: fetcher,
	}
}

// Next returns the next item. The second value is false once the sequence has ended. An
// error is fatal: the same error is returned by every later call.
func (x *Cursor[Q, T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	for len(x.buffer) == 0 {
		if x.err != nil {
			return zero, false, x.err
		}
		if x.exhausted {
			return zero, false, nil
		}
		if err := x.fill(ctx); err != nil {
			x.err = err
			return zero, false, err
		}
	}

	item := x.buffer[0]
	x.buffer = x.buffer[1:]
	return item, true, nil
}

func (x *Cursor[Q, T]) fill(ctx context.Context) error {
	next := x.page + 1
	page, err := x.fetcher.FetchPage(ctx, x.query, next)
	if err != nil {
		return err
	}
	if page == nil {
		page = &model.Page[T]{}
	}

	x.page = next
	x.last = page
	x.buffer = page.Items

	if !page.Full() || next >= model.PageCeiling {
		x.exhausted = true
	}
	return nil
}

// All adapts the cursor to a range-over-func sequence. Iteration stops after the first
// error is yielded.
func (x *Cursor[Q, T]) All(ctx context.Context) iter.Seq2[T, error] {
	return sequence(ctx, x.Next)
}

func (x *Cursor[Q, T]) Query() Q {
	return x.query
}

// Pages returns the number of pages fetched so far.
func (x *Cursor[Q, T]) Pages() int {
	return x.page
}

// LastPage returns the most recently fetched page, or nil before the first fetch.
func (x *Cursor[Q, T]) LastPage() *model.Page[T] {
	return x.last
}

func sequence[T any](ctx context.Context, next func(context.Context) (T, bool, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok, err := next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}
