package model

import (
	"encoding/base64"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

// Page is one page of search results. Total and Incomplete mirror total_count and
// incomplete_results of the search API.
type Page[T any] struct {
	Items      []T
	Total      int
	Incomplete bool
}

// Full reports whether the page holds PerPage items, i.e. more pages may follow.
func (x *Page[T]) Full() bool {
	return len(x.Items) >= PerPage
}

type Repository struct {
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
}

type CodeOccurrence struct {
	Path string `json:"path"`
}

type FileContent struct {
	Encoding string
	Content  string
}

// Decode returns the file body. Only base64 is supported, the encoding the contents API
// uses for files.
func (x FileContent) Decode() (string, error) {
	if x.Encoding != "base64" {
		return "", goerr.Wrap(types.ErrInvalidResponse, "unsupported content encoding", goerr.V("encoding", x.Encoding))
	}
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(x.Content, "\n", ""))
	if err != nil {
		return "", goerr.Wrap(types.ErrInvalidResponse, "failed to decode content", goerr.V("error", err))
	}
	return string(raw), nil
}

// LanguageStats maps a language name to the number of bytes written in it.
type LanguageStats map[string]int

func (x LanguageStats) Total() int {
	var total int
	for _, n := range x {
		total += n
	}
	return total
}

// Bytes returns the byte count of lang, matching the name case-insensitively.
func (x LanguageStats) Bytes(lang types.Language) int {
	if n, ok := x[string(lang)]; ok {
		return n
	}
	for name, n := range x {
		if strings.EqualFold(name, string(lang)) {
			return n
		}
	}
	return 0
}

// Dominant reports whether lang accounts for at least half of all bytes.
func (x LanguageStats) Dominant(lang types.Language) bool {
	n := x.Bytes(lang)
	return n > 0 && n*2 >= x.Total()
}
