package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/domain/interfaces"
	"github.com/secmon-lab/ghcrawl/pkg/domain/model"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

type Format string

const (
	// FormatText writes "<full_name> <stars> <language bytes>" per finding.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", goerr.Wrap(types.ErrInvalidOption, "unknown report format", goerr.V("format", s))
	}
}

// Writer prints findings to an io.Writer as they arrive.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
}

var _ interfaces.FindingWriter = (*Writer)(nil)

func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

func (x *Writer) Write(ctx context.Context, finding *model.Finding) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	switch x.format {
	case FormatJSON:
		if err := json.NewEncoder(x.w).Encode(finding); err != nil {
			return goerr.Wrap(err, "failed to write finding", goerr.V("repo", finding.Repository))
		}
	default:
		if _, err := fmt.Fprintf(x.w, "%s %d %d\n", finding.Repository, finding.Stars, finding.LanguageBytes); err != nil {
			return goerr.Wrap(err, "failed to write finding", goerr.V("repo", finding.Repository))
		}
	}
	return nil
}
