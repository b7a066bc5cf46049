package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/usecase"
)

const taggedUnionSource = `#include <stdint.h>

struct value {
  int type;
  union {
    int64_t i;
    double d;
  } as;
};
`

func TestTaggedUnionInspector(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    bool
	}{
		{"tagged union", taggedUnionSource, true},
		{"bare union", "union u {\n  int a;\n  float b;\n};\n", false},
		{"struct without type field", "struct s {\n  int kind;\n  union {\n    int a;\n  } v;\n};\n", false},
		{"union with tab indent", "struct s {\n\tint type;\n\tunion {\n\t\tint a;\n\t} v;\n};\n", false},
		{"empty", "", false},
	}

	inspector := &usecase.TaggedUnionInspector{}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, inspector.Inspect(tc.content)).Equal(tc.want)
		})
	}
}

func TestNarrowQuery(t *testing.T) {
	base := model.CodeOccurrenceQuery{Repo: "owner/repo", Language: "c", Token: "union"}

	t.Run("nested file", func(t *testing.T) {
		q := usecase.NarrowQuery(base, model.CodeOccurrence{Path: "src/core/value.h"}, "type")
		gt.V(t, q).Equal(model.CodeOccurrenceQuery{
			Repo:     "owner/repo",
			Path:     "src/core",
			Filename: "value.h",
			Language: "c",
			Token:    "type",
		})
		gt.V(t, q.SearchQuery()).Equal("type repo:owner/repo language:c path:src/core filename:value.h")
	})

	t.Run("root file omits path", func(t *testing.T) {
		q := usecase.NarrowQuery(base, model.CodeOccurrence{Path: "value.h"}, "type")
		gt.V(t, q.Path).Equal("")
		gt.V(t, q.Filename).Equal("value.h")
	})
}

func TestCorroborate(t *testing.T) {
	base := model.CodeOccurrenceQuery{Repo: "owner/repo", Language: "c", Token: "union"}
	occurrence := model.CodeOccurrence{Path: "src/value.h"}

	t.Run("narrowed query has a hit", func(t *testing.T) {
		var got []model.CodeOccurrenceQuery
		fetcher := fetchFunc[model.CodeOccurrenceQuery, model.CodeOccurrence](func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			got = append(got, q)
			return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{occurrence}}, nil
		})

		ok, err := usecase.Corroborate(context.Background(), fetcher, base, occurrence, "type")
		gt.NoError(t, err)
		gt.True(t, ok)
		gt.V(t, len(got)).Equal(1)
		gt.V(t, got[0].Token.String()).Equal("type")
		gt.V(t, got[0].Path).Equal("src")
		gt.V(t, got[0].Filename).Equal("value.h")
	})

	t.Run("narrowed query is empty", func(t *testing.T) {
		fetcher := fetchFunc[model.CodeOccurrenceQuery, model.CodeOccurrence](func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			return &model.Page[model.CodeOccurrence]{}, nil
		})

		ok, err := usecase.Corroborate(context.Background(), fetcher, base, occurrence, "type")
		gt.NoError(t, err)
		gt.False(t, ok)
	})

	t.Run("same file name elsewhere does not count", func(t *testing.T) {
		root := model.CodeOccurrence{Path: "value.h"}
		fetcher := fetchFunc[model.CodeOccurrenceQuery, model.CodeOccurrence](func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{
				{Path: "vendor/other/value.h"},
			}}, nil
		})

		ok, err := usecase.Corroborate(context.Background(), fetcher, base, root, "type")
		gt.NoError(t, err)
		gt.False(t, ok)
	})

	t.Run("subdirectory hit does not count", func(t *testing.T) {
		fetcher := fetchFunc[model.CodeOccurrenceQuery, model.CodeOccurrence](func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{
				{Path: "src/x/value.h"},
			}}, nil
		})

		ok, err := usecase.Corroborate(context.Background(), fetcher, base, occurrence, "type")
		gt.NoError(t, err)
		gt.False(t, ok)
	})

	t.Run("occurrence found after other files", func(t *testing.T) {
		fetcher := fetchFunc[model.CodeOccurrenceQuery, model.CodeOccurrence](func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			return &model.Page[model.CodeOccurrence]{Items: []model.CodeOccurrence{
				{Path: "src/x/value.h"},
				{Path: "src/value.h"},
			}}, nil
		})

		ok, err := usecase.Corroborate(context.Background(), fetcher, base, occurrence, "type")
		gt.NoError(t, err)
		gt.True(t, ok)
	})

	t.Run("fetch failure", func(t *testing.T) {
		errBroken := errors.New("broken")
		fetcher := fetchFunc[model.CodeOccurrenceQuery, model.CodeOccurrence](func(ctx context.Context, q model.CodeOccurrenceQuery, page int) (*model.Page[model.CodeOccurrence], error) {
			return nil, errBroken
		})

		_, err := usecase.Corroborate(context.Background(), fetcher, base, occurrence, "type")
		gt.True(t, errors.Is(err, errBroken))
	})
}
