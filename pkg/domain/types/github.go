package types

import (
	"log/slog"
	"strings"
)

type (
	GitHubToken         string
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	Language            string
	SearchToken         string
)

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

// Qualifier returns the language as written in a search qualifier. GitHub matches
// language qualifiers case-insensitively but the lowercase form keeps URLs stable.
func (x Language) Qualifier() string {
	return strings.ToLower(string(x))
}

func (x Language) String() string { return string(x) }

func (x SearchToken) String() string { return string(x) }
