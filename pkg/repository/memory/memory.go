package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/repository"
)

// FindingRepository keeps findings in memory, one per repository, in the order they
// were first written.
type FindingRepository struct {
	mu       sync.RWMutex
	order    []string
	findings map[string]*model.Finding
}

var _ interfaces.FindingWriter = (*FindingRepository)(nil)

// New creates a new in-memory repository
func New() *FindingRepository {
	return &FindingRepository{
		findings: make(map[string]*model.Finding),
	}
}

// Write stores finding. A later finding for the same repository replaces the earlier one
// but keeps its position.
func (r *FindingRepository) Write(ctx context.Context, finding *model.Finding) error {
	if finding == nil || finding.Repository == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "finding has no repository")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.findings[finding.Repository]; !exists {
		r.order = append(r.order, finding.Repository)
	}
	r.findings[finding.Repository] = copyFinding(finding)

	return nil
}

func (r *FindingRepository) Get(ctx context.Context, repo string) (*model.Finding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	finding, exists := r.findings[repo]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "finding not found",
			goerr.V("repo", repo),
		)
	}

	return copyFinding(finding), nil
}

func (r *FindingRepository) List(ctx context.Context) ([]*model.Finding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	findings := make([]*model.Finding, 0, len(r.order))
	for _, repo := range r.order {
		findings = append(findings, copyFinding(r.findings[repo]))
	}

	return findings, nil
}

func (r *FindingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func copyFinding(f *model.Finding) *model.Finding {
	c := *f
	return &c
}
