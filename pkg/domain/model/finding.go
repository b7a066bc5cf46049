package model

import (
	"time"

	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
)

// Finding is a repository whose content matched the inspection.
type Finding struct {
	ID            types.FindingID `bigquery:"id" json:"id"`
	Timestamp     time.Time       `bigquery:"timestamp" json:"timestamp"`
	Repository    string          `bigquery:"repository" json:"repository"`
	Stars         int             `bigquery:"stars" json:"stars"`
	Language      types.Language  `bigquery:"language" json:"language"`
	LanguageBytes int             `bigquery:"language_bytes" json:"language_bytes"`
	TotalBytes    int             `bigquery:"total_bytes" json:"total_bytes"`
	Path          string          `bigquery:"path" json:"path"`
}

type FindingRecord struct {
	Finding
	Timestamp int64 `bigquery:"timestamp" json:"timestamp"`
}

func (x *Finding) Record() *FindingRecord {
	return &FindingRecord{
		Finding:   *x,
		Timestamp: x.Timestamp.UnixMicro(),
	}
}
