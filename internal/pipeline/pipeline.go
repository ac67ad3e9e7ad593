// Package pipeline turns folders of numbered page scans into comic book
// archives, one folder at a time.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"cba/internal/archiver"
	"cba/internal/pages"
	"cba/internal/walker"
)

type Config struct {
	Logger *log.Logger

	// Candidates replaces the archiver.DefaultCandidates probe list.
	Candidates []string

	// Timeout bounds each archiver run. Zero means no limit.
	Timeout time.Duration
}

// Pipeline archives folders sequentially. At most one run is active at a time.
type Pipeline struct {
	archiver string
	found    bool
	timeout  time.Duration
	logger   *log.Logger
	running  atomic.Bool
}

// New probes for the archiver. A missing archiver does not fail construction;
// every run then aborts with "Undefined 7z".
func New(ctx context.Context, cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	path, found := archiver.Locate(ctx, cfg.Candidates)
	if found {
		logger.Debug("archiver located", "path", path)
	} else {
		logger.Warn("no working 7z found")
	}
	return &Pipeline{
		archiver: path,
		found:    found,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Archiver returns the located executable, or "" when none was found.
func (p *Pipeline) Archiver() string { return p.archiver }

// Running reports whether a run is in progress.
func (p *Pipeline) Running() bool { return p.running.Load() }

// Submit starts a run in the background and returns immediately. Progress is
// reported through req.Emit. ErrBusy is returned, and nothing is emitted, when
// a run is already in progress.
func (p *Pipeline) Submit(ctx context.Context, req Request) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	go func() {
		_, _ = p.execute(ctx, req)
	}()
	return nil
}

// Run is the blocking form of Submit. The returned error is the one carried by
// the final KindAborted event.
func (p *Pipeline) Run(ctx context.Context, req Request) (Summary, error) {
	if !p.running.CompareAndSwap(false, true) {
		return Summary{}, ErrBusy
	}
	return p.execute(ctx, req)
}

// execute expects the running flag to be held and releases it before the
// final event, so a caller reacting to Done or Aborted may start a new run.
func (p *Pipeline) execute(ctx context.Context, req Request) (Summary, error) {
	emit := req.Emit
	if emit == nil {
		emit = func(Event) {}
	}
	logger := p.logger.With("run", uuid.NewString()[:8])

	summary, err := p.process(ctx, req, emit, logger)
	p.running.Store(false)

	if err != nil {
		logger.Error("run aborted", "err", err)
		emit(Event{Kind: KindMessage, Text: err.Error()})
		emit(Event{Kind: KindAborted, Text: err.Error(), Err: err})
		return summary, err
	}
	logger.Info("run complete",
		"archived", summary.Archived,
		"skipped", summary.Skipped,
		"bytes", humanize.Bytes(uint64(summary.Bytes)))
	emit(Event{Kind: KindMessage, Text: "Complete"})
	emit(Event{Kind: KindDone})
	return summary, nil
}

func (p *Pipeline) process(ctx context.Context, req Request, emit func(Event), logger *log.Logger) (Summary, error) {
	var summary Summary
	if !p.found {
		return summary, &Error{Kind: ArchiverMissing, Err: ErrArchiverMissing}
	}

	emit(Event{Kind: KindMessage, Text: "Directory read"})
	folders := Folders(req.Paths)
	summary.Folders = len(folders)
	logger.Info("folders found", "count", len(folders), "type", req.Type)

	total := len(folders)
	for i, folder := range folders {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		name := filepath.Base(folder)
		emit(Event{
			Kind:   KindStarting,
			Index:  i + 1,
			Total:  total,
			Folder: name,
			Text:   fmt.Sprintf("%d/%d %s", i+1, total, name),
		})

		result, err := p.archive(ctx, folder, req.Type, logger.With("folder", name))
		if err != nil {
			return summary, err
		}
		if result.skipped {
			summary.Skipped++
			emit(Event{Kind: KindMessage, Folder: name, Text: filepath.Base(result.archive) + " exists, skipped"})
			continue
		}

		summary.Archived++
		summary.Pages += result.pages
		summary.Bytes += result.bytes
		emit(Event{Kind: KindFraction, Folder: name, Fraction: float64(i+1) / float64(total)})
	}
	return summary, nil
}

type folderResult struct {
	archive string
	skipped bool
	pages   int
	bytes   int64
}

func (p *Pipeline) archive(ctx context.Context, folder string, requested archiver.Container, logger *log.Logger) (folderResult, error) {
	images, err := pages.Collect(folder)
	if err != nil {
		return folderResult{}, &Error{Kind: EnumerateFailed, Path: folder, Err: err}
	}
	if len(images) == 0 {
		return folderResult{}, &Error{Kind: FolderEmpty, Path: folder}
	}

	sorted := pages.Sort(images)
	size := pages.TotalSize(sorted)
	container := archiver.Select(requested, size)
	archive := archiver.ArchivePath(folder, container)
	if archiver.ArchiveExists(folder, container) {
		logger.Info("archive exists, skipping", "archive", archive)
		return folderResult{archive: archive, skipped: true}, nil
	}

	targets := pages.Targets(folder, len(sorted))
	moves, err := pages.Rename(sorted, targets, func(m pages.Move) {
		logger.Debug("renamed", "from", filepath.Base(m.From), "to", filepath.Base(m.To))
	})
	if err != nil {
		logger.Error("rename failed", "renamed", len(moves), "err", err)
		return folderResult{}, renameError(err)
	}

	runner := archiver.Runner{
		Path:    p.archiver,
		Dir:     folder,
		Timeout: p.timeout,
		OnOutput: func(line string) {
			logger.Debug("7z", "out", line)
		},
	}
	logger.Info("archiving",
		"pages", len(targets),
		"size", humanize.Bytes(uint64(size)),
		"container", container,
		"renamed", len(moves))
	logger.Debug("archiver command", "argv", archiver.Args(archive, container, targets))

	start := time.Now()
	if err := runner.Run(ctx, archive, container, targets); err != nil {
		return folderResult{}, archiveError(archive, err)
	}
	logger.Info("archived", "archive", filepath.Base(archive), "took", time.Since(start).Round(time.Millisecond))

	return folderResult{archive: archive, pages: len(targets), bytes: size}, nil
}

// Folders walks paths and keeps the folders a run processes: those holding
// pages, and those with neither pages nor subfolders, which a run reports as
// empty. Folders that only group other folders are dropped.
func Folders(paths []string) []string {
	var folders []string
	for _, dir := range walker.Walk(paths) {
		if dir.Intermediate() {
			continue
		}
		folders = append(folders, dir.Path)
	}
	return folders
}
