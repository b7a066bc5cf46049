package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

const (
	// PerPage is the page size requested from the search API.
	PerPage = 100

	// PageCeiling is the number of pages a single search query can reach. GitHub
	// serves at most 1000 results per query.
	PageCeiling = 10
)

// ResultCap is the number of results reachable through one search query.
const ResultCap = PerPage * PageCeiling

// RepositoryQuery selects repositories by an inclusive star range and language.
type RepositoryQuery struct {
	MinStars int
	MaxStars int
	Language types.Language
}

func (x RepositoryQuery) Validate() error {
	if x.MinStars < 0 {
		return goerr.Wrap(types.ErrValidationFailed, "min stars must not be negative", goerr.V("min", x.MinStars))
	}
	if x.MinStars > x.MaxStars {
		return goerr.Wrap(types.ErrValidationFailed, "min stars must not exceed max stars",
			goerr.V("min", x.MinStars),
			goerr.V("max", x.MaxStars),
		)
	}
	if x.Language == "" {
		return goerr.Wrap(types.ErrValidationFailed, "language is empty")
	}
	return nil
}

// SearchQuery renders the `q` parameter of the repository search endpoint.
func (x RepositoryQuery) SearchQuery() string {
	return fmt.Sprintf("stars:%d..%d language:%s", x.MinStars, x.MaxStars, x.Language.Qualifier())
}

// FirstWindow returns the top half of the star range.
func (x RepositoryQuery) FirstWindow() RepositoryQuery {
	return x.window(x.MaxStars)
}

// NextWindow returns the window right below x, bounded by floor. The second value is
// false when x already reaches floor.
func (x RepositoryQuery) NextWindow(floor int) (RepositoryQuery, bool) {
	upper := x.MinStars - 1
	if upper < floor || upper < 0 {
		return RepositoryQuery{}, false
	}
	next := RepositoryQuery{MinStars: floor, Language: x.Language}
	return next.window(upper), true
}

func (x RepositoryQuery) window(upper int) RepositoryQuery {
	return RepositoryQuery{
		MinStars: max(x.MinStars, upper/2),
		MaxStars: upper,
		Language: x.Language,
	}
}

func (x RepositoryQuery) String() string {
	return fmt.Sprintf("[%d, %d] %s", x.MinStars, x.MaxStars, x.Language)
}

// CodeOccurrenceQuery selects files of one repository containing Token.
type CodeOccurrenceQuery struct {
	Repo     string
	Path     string
	Filename string
	Language types.Language
	Token    types.SearchToken
}

func (x CodeOccurrenceQuery) Validate() error {
	if x.Token == "" {
		return goerr.Wrap(types.ErrValidationFailed, "search token is empty")
	}
	if owner, name, ok := strings.Cut(x.Repo, "/"); !ok || owner == "" || name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository must be owner/name", goerr.V("repo", x.Repo))
	}
	if x.Language == "" {
		return goerr.Wrap(types.ErrValidationFailed, "language is empty")
	}
	return nil
}

// SearchQuery renders the `q` parameter of the code search endpoint.
func (x CodeOccurrenceQuery) SearchQuery() string {
	q := fmt.Sprintf("%s repo:%s language:%s", x.Token, x.Repo, x.Language.Qualifier())
	if x.Path != "" {
		q += " path:" + x.Path
	}
	if x.Filename != "" {
		q += " filename:" + x.Filename
	}
	return q
}
