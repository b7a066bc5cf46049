package usecase

import (
	"context"
	"path"
	"strings"

	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

// TaggedUnionInspector looks for a C struct that holds a type field next to an anonymous
// union, a lexical approximation of a tagged union.
type TaggedUnionInspector struct{}

var _ interfaces.ContentInspector = (*TaggedUnionInspector)(nil)

var taggedUnionMarkers = []string{
	"struct ",
	" type;",
	"  union {",
}

func (x *TaggedUnionInspector) Inspect(content string) bool {
	for _, marker := range taggedUnionMarkers {
		if !strings.Contains(content, marker) {
			return false
		}
	}
	return true
}

// Corroborate searches again for token, narrowed to the directory and file name of
// occurrence, and reports whether the narrowed search yields occurrence itself. The path
// and filename qualifiers also match files of the same name elsewhere in the repository,
// so other hits do not count.
func Corroborate(ctx context.Context, fetcher CodeFetcher, base model.CodeOccurrenceQuery, occurrence model.CodeOccurrence, token types.SearchToken) (bool, error) {
	q := NarrowQuery(base, occurrence, token)
	want := strings.Trim(occurrence.Path, "/")

	for item, err := range EnumerateCodeOccurrences(q, fetcher).All(ctx) {
		if err != nil {
			return false, err
		}
		if strings.Trim(item.Path, "/") == want {
			return true, nil
		}
	}
	return false, nil
}

// NarrowQuery builds a query for token restricted to the file of occurrence.
func NarrowQuery(base model.CodeOccurrenceQuery, occurrence model.CodeOccurrence, token types.SearchToken) model.CodeOccurrenceQuery {
	p := strings.Trim(occurrence.Path, "/")
	q := model.CodeOccurrenceQuery{
		Repo:     base.Repo,
		Language: base.Language,
		Token:    token,
		Filename: path.Base(p),
	}
	if dir := path.Dir(p); dir != "." {
		q.Path = dir
	}
	return q
}
