package infra

import (
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
)

type Clients struct {
	githubAPI interfaces.GitHubAPI
	bqClient  interfaces.BigQuery
	writers   []interfaces.FindingWriter
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHubAPI() interfaces.GitHubAPI {
	return x.githubAPI
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) FindingWriters() []interfaces.FindingWriter {
	return x.writers
}

func WithGitHubAPI(client interfaces.GitHubAPI) Option {
	return func(x *Clients) {
		x.githubAPI = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

// WithFindingWriter appends a sink. It can be given multiple times.
func WithFindingWriter(writer interfaces.FindingWriter) Option {
	return func(x *Clients) {
		if writer != nil {
			x.writers = append(x.writers, writer)
		}
	}
}
