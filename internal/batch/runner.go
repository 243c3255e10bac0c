// Package batch applies the loose CSS cleaner to a list of files, one at a
// time, and reports what happened to each of them.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/jmylchreest/loosecss/internal/logger"
	"github.com/jmylchreest/loosecss/pkg/cleaner/loosecss"
)

// Runner processes files on a filesystem rooted at the project root.
type Runner struct {
	fs      afero.Fs
	cleaner *loosecss.Cleaner
	dryRun  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithDryRun reports what would be cleaned without rewriting any file.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) {
		r.dryRun = enabled
	}
}

// New creates a Runner. Paths given to Process and Run are resolved against fs.
// If c is nil the default cleaner is used.
func New(fs afero.Fs, c *loosecss.Cleaner, opts ...Option) *Runner {
	if c == nil {
		c = loosecss.MustNew(nil)
	}
	r := &Runner{fs: fs, cleaner: c}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewOS creates a Runner over the real filesystem below root.
func NewOS(root string, c *loosecss.Cleaner, opts ...Option) *Runner {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root), c, opts...)
}

// Run expands paths and processes every existing file in order. Missing files
// are skipped with a warning. Per-file failures never stop the batch; ctx is
// only checked between files.
func (r *Runner) Run(ctx context.Context, paths []string) *Summary {
	expanded := r.Expand(paths)
	summary := &Summary{
		Attempted: len(expanded),
		DryRun:    r.dryRun,
		Files:     make([]FileResult, 0, len(expanded)),
	}

	for _, path := range expanded {
		if err := ctx.Err(); err != nil {
			logger.WarnContext(ctx, "batch interrupted", "remaining", len(expanded)-len(summary.Files), "error", err)
			break
		}

		exists, err := afero.Exists(r.fs, path)
		if err != nil {
			logger.DebugContext(ctx, "stat failed", "path", path, "error", err)
		}
		if !exists {
			logger.WarnContext(ctx, "file not found", "path", path)
			summary.add(FileResult{Path: path, Status: StatusMissing})
			continue
		}

		summary.add(r.Process(path))
	}

	return summary
}

// Process cleans a single file that the caller has already found to exist.
// It never returns an error: failures are logged and reported in the result.
func (r *Runner) Process(path string) FileResult {
	result := FileResult{Path: path}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return r.fail(result, fmt.Errorf("reading file: %w", err))
	}
	if !utf8.Valid(data) {
		return r.fail(result, ErrInvalidUTF8)
	}

	stripped := r.cleaner.Strip(string(data))
	result.Reason = stripped.Reason
	logger.Debug("scanned body",
		"path", path,
		"body_tag_end", stripped.BodyTagEnd,
		"first_element", stripped.FirstElement,
		"reason", stripped.Reason)

	if !stripped.Changed {
		if stripped.Reason == loosecss.ReasonNoBody {
			logger.Warn("body tag not found", "path", path)
			result.Status = StatusNoBody
			return result
		}
		result.Status = StatusUnchanged
		return result
	}

	result.BytesRemoved = stripped.BytesRemoved
	if !r.dryRun {
		if err := r.write(path, stripped.Content); err != nil {
			result.BytesRemoved = 0
			return r.fail(result, err)
		}
	}

	result.Status = StatusCleaned
	logger.Info("cleaned loose CSS",
		"path", path,
		"removed", humanize.Bytes(uint64(stripped.BytesRemoved)),
		"dry_run", r.dryRun)
	return result
}

// write overwrites path in place, keeping its permission bits.
func (r *Runner) write(path, content string) error {
	info, err := r.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat before write: %w", err)
	}
	if err := afero.WriteFile(r.fs, path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func (r *Runner) fail(result FileResult, err error) FileResult {
	logger.Error("failed to process file", "path", result.Path, "error", err)
	result.Status = StatusError
	result.Error = err.Error()
	result.err = err
	return result
}

// Expand resolves glob entries against the runner's filesystem. Entries
// without glob syntax are returned as they are, whether or not they exist.
func (r *Runner) Expand(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !isGlob(p) {
			out = append(out, p)
			continue
		}

		pattern := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p)), "./")
		matches, err := doublestar.Glob(afero.NewIOFS(r.fs), pattern)
		if err != nil {
			logger.Warn("invalid glob pattern", "pattern", p, "error", err)
			continue
		}
		if len(matches) == 0 {
			logger.Debug("glob matched no files", "pattern", p)
		}
		out = append(out, matches...)
	}
	return out
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
