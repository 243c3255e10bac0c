package batch

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/jmylchreest/loosecss/pkg/cleaner/loosecss"
)

// Status is the per-file outcome of a run.
type Status string

const (
	StatusCleaned   Status = "cleaned"
	StatusUnchanged Status = "unchanged"
	StatusMissing   Status = "missing"
	StatusNoBody    Status = "no_body"
	StatusError     Status = "error"
)

// FileResult records what happened to one configured path.
type FileResult struct {
	Path         string          `json:"path" yaml:"path"`
	Status       Status          `json:"status" yaml:"status"`
	Reason       loosecss.Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
	BytesRemoved int             `json:"bytes_removed,omitempty" yaml:"bytes_removed,omitempty"`
	Error        string          `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Changed reports whether the file was (or, in dry-run mode, would be) rewritten.
func (r FileResult) Changed() bool {
	return r.Status == StatusCleaned
}

// Summary aggregates a batch run.
type Summary struct {
	Attempted int          `json:"attempted" yaml:"attempted"`
	Cleaned   int          `json:"cleaned" yaml:"cleaned"`
	Skipped   int          `json:"skipped" yaml:"skipped"`
	Failed    int          `json:"failed" yaml:"failed"`
	DryRun    bool         `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Files     []FileResult `json:"files" yaml:"files"`
}

func (s *Summary) add(r FileResult) {
	s.Files = append(s.Files, r)
	switch r.Status {
	case StatusCleaned:
		s.Cleaned++
	case StatusMissing:
		s.Skipped++
	case StatusError:
		s.Failed++
	}
}

// BytesRemoved totals the bytes stripped across all cleaned files.
func (s *Summary) BytesRemoved() int {
	total := 0
	for _, f := range s.Files {
		total += f.BytesRemoved
	}
	return total
}

// Err combines every per-file error, or returns nil if there were none.
func (s *Summary) Err() error {
	var err error
	for _, f := range s.Files {
		if f.err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", f.Path, f.err))
		}
	}
	return err
}

// String is the one-line summary printed at the end of a run.
func (s *Summary) String() string {
	return fmt.Sprintf("Processed %d files, %d cleaned", s.Attempted, s.Cleaned)
}

// ErrInvalidUTF8 is reported for files that are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")
