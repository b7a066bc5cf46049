package usecase

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
)

type (
	RepositoryFetcher = interfaces.PageFetcher[model.RepositoryQuery, model.Repository]
	CodeFetcher       = interfaces.PageFetcher[model.CodeOccurrenceQuery, model.CodeOccurrence]
	CodeCursor        = Cursor[model.CodeOccurrenceQuery, model.CodeOccurrence]
)

// RepositoryCursor enumerates repositories of a star range by splitting it into
// descending, disjoint windows. The first window is the top half of the range and every
// following window is the lower half of what remains, so each one is expected to stay
// under model.ResultCap. Each window is paginated independently. Results of a window
// that still exceeds the cap are dropped; such windows are reported by Windows.
type RepositoryCursor struct {
	query   model.RepositoryQuery
	fetcher RepositoryFetcher

	window  model.RepositoryQuery
	current *Cursor[model.RepositoryQuery, model.Repository]
	items   int
	windows []model.WindowStat
	done    bool
	err     error
}

// EnumerateRepositories returns a cursor over repositories matching q. Nothing is
// fetched until Next is called.
func EnumerateRepositories(q model.RepositoryQuery, fetcher RepositoryFetcher) *RepositoryCursor {
	cursor := &RepositoryCursor{
		query:   q,
		fetcher: fetcher,
		window:  q.FirstWindow(),
	}
	if err := q.Validate(); err != nil {
		cursor.err = goerr.Wrap(err, "invalid repository query", goerr.V("query", q))
	}
	return cursor
}

func (x *RepositoryCursor) Next(ctx context.Context) (model.Repository, bool, error) {
	for {
		if x.err != nil {
			return model.Repository{}, false, x.err
		}
		if x.done {
			return model.Repository{}, false, nil
		}

		if x.current == nil {
			logging.From(ctx).Debug("Start star window",
				slog.Int("min_stars", x.window.MinStars),
				slog.Int("max_stars", x.window.MaxStars),
			)
			x.current = Paginate(x.window, x.fetcher)
			x.items = 0
		}

		repo, ok, err := x.current.Next(ctx)
		if err != nil {
			x.err = goerr.Wrap(err, "failed to enumerate star window", goerr.V("window", x.window))
			return model.Repository{}, false, x.err
		}
		if ok {
			x.items++
			return repo, true, nil
		}

		x.closeWindow(ctx)

		next, more := x.window.NextWindow(x.query.MinStars)
		if !more {
			x.done = true
			continue
		}
		x.window = next
	}
}

func (x *RepositoryCursor) closeWindow(ctx context.Context) {
	stat := model.WindowStat{
		Window: x.window,
		Pages:  x.current.Pages(),
		Items:  x.items,
	}

	if last := x.current.LastPage(); last != nil {
		stat.Total = last.Total
		if stat.Total > 0 {
			stat.Truncated = stat.Total > model.ResultCap
		} else {
			stat.Truncated = stat.Pages >= model.PageCeiling && last.Full()
		}
	}

	if stat.Truncated {
		logging.From(ctx).Warn("Star window exceeds search result cap, results are dropped",
			slog.Int("min_stars", stat.Window.MinStars),
			slog.Int("max_stars", stat.Window.MaxStars),
			slog.Int("total", stat.Total),
			slog.Int("fetched", stat.Items),
			slog.Int("dropped", stat.Dropped()),
		)
	}

	x.windows = append(x.windows, stat)
	x.current = nil
}

// All adapts the cursor to a range-over-func sequence.
func (x *RepositoryCursor) All(ctx context.Context) iter.Seq2[model.Repository, error] {
	return sequence(ctx, x.Next)
}

// Windows returns the windows completed so far, in the order they were walked.
func (x *RepositoryCursor) Windows() []model.WindowStat {
	return slices.Clone(x.windows)
}

// Truncated reports whether any completed window dropped results.
func (x *RepositoryCursor) Truncated() bool {
	return slices.ContainsFunc(x.windows, func(w model.WindowStat) bool {
		return w.Truncated
	})
}

// EnumerateCodeOccurrences returns a cursor over files matching q.
func EnumerateCodeOccurrences(q model.CodeOccurrenceQuery, fetcher CodeFetcher) *CodeCursor {
	cursor := Paginate(q, fetcher)
	if err := q.Validate(); err != nil {
		cursor.err = goerr.Wrap(err, "invalid code occurrence query", goerr.V("query", q))
	}
	return cursor
}
