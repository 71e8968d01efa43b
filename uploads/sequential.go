// Package uploads runs file uploads one at a time and reports each failure
// against the file that caused it.
package uploads

import (
	"context"
	"fmt"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"go.uber.org/zap"
)

// Item is one file queued for upload. Label says what the file is for, such
// as "general" or "owner_1_aadhar".
type Item struct {
	Label string
	File  clients.File
}

// UploadFunc uploads a single item.
type UploadFunc func(ctx context.Context, item Item) error

// FileFailure names the file that failed and why.
type FileFailure struct {
	Label string `json:"label"`
	File  string `json:"file"`
	Err   error  `json:"-"`
}

func (f FileFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.File, f.Label, f.Err)
}

// Report is the outcome of a run. Abandoned items were never attempted
// because the context ended.
type Report struct {
	Succeeded []Item        `json:"-"`
	Failed    []FileFailure `json:"failed"`
	Abandoned []Item        `json:"-"`
}

// AllSucceeded reports whether every item was uploaded.
func (r *Report) AllSucceeded() bool {
	return len(r.Failed) == 0 && len(r.Abandoned) == 0
}

// Summary is a one-line human description of the run.
func (r *Report) Summary() string {
	parts := []string{fmt.Sprintf("%d uploaded", len(r.Succeeded))}
	if len(r.Failed) > 0 {
		names := make([]string, 0, len(r.Failed))
		for _, f := range r.Failed {
			names = append(names, f.File)
		}
		parts = append(parts, fmt.Sprintf("%d failed (%s)", len(r.Failed), strings.Join(names, ", ")))
	}
	if len(r.Abandoned) > 0 {
		parts = append(parts, fmt.Sprintf("%d not attempted", len(r.Abandoned)))
	}
	return strings.Join(parts, ", ")
}

// Sequential uploads items in order, waiting for each before the next.
type Sequential struct {
	logger *zap.Logger
}

func NewSequential(logger *zap.Logger) *Sequential {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequential{logger: logger}
}

// Run uploads every item with fn. A failing item does not stop the run; a
// cancelled context does, and the remaining items are reported as abandoned.
func (s *Sequential) Run(ctx context.Context, items []Item, fn UploadFunc) *Report {
	report := &Report{}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			report.Abandoned = append(report.Abandoned, items[i:]...)
			s.logger.Warn("upload run abandoned",
				zap.Int("remaining", len(items)-i),
				zap.Error(err),
			)
			break
		}

		if err := fn(ctx, item); err != nil {
			report.Failed = append(report.Failed, FileFailure{Label: item.Label, File: item.File.Name, Err: err})
			s.logger.Warn("file upload failed",
				zap.String("label", item.Label),
				zap.String("file", item.File.Name),
				zap.Error(err),
			)
			continue
		}
		report.Succeeded = append(report.Succeeded, item)
	}
	return report
}
