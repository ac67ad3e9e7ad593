package pipeline

import (
	"os"
	"path/filepath"

	"cba/internal/archiver"
	"cba/internal/pages"
)

// FolderPlan previews what a run would do with one folder.
type FolderPlan struct {
	Path          string
	Pages         []string
	Bytes         int64
	Container     archiver.Container
	Archive       string
	ArchiveExists bool
	// Renames is how many pages a run would move before reaching a page
	// that is already canonical.
	Renames int
	// Conflict is the canonical name that would block renaming, if any.
	Conflict string
	Err      error
}

// Plan reports what Run would do for paths without touching the filesystem.
func Plan(paths []string, requested archiver.Container) []FolderPlan {
	var plans []FolderPlan
	for _, folder := range Folders(paths) {
		plans = append(plans, planFolder(folder, requested))
	}
	return plans
}

func planFolder(folder string, requested archiver.Container) FolderPlan {
	plan := FolderPlan{Path: folder}
	images, err := pages.Collect(folder)
	if err != nil {
		plan.Err = &Error{Kind: EnumerateFailed, Path: folder, Err: err}
		return plan
	}
	if len(images) == 0 {
		plan.Err = &Error{Kind: FolderEmpty, Path: folder}
		return plan
	}

	plan.Pages = pages.Sort(images)
	plan.Bytes = pages.TotalSize(plan.Pages)
	plan.Container = archiver.Select(requested, plan.Bytes)
	plan.Archive = archiver.ArchivePath(folder, plan.Container)
	plan.ArchiveExists = archiver.ArchiveExists(folder, plan.Container)
	if plan.ArchiveExists {
		return plan
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		plan.Err = &Error{Kind: EnumerateFailed, Path: folder, Err: err}
		return plan
	}
	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		present[entry.Name()] = true
	}

	targets := pages.Targets(folder, len(plan.Pages))
	for i, source := range plan.Pages {
		from, to := filepath.Base(source), filepath.Base(targets[i])
		if from == to {
			break
		}
		if present[to] {
			plan.Conflict = targets[i]
			break
		}
		delete(present, from)
		present[to] = true
		plan.Renames++
	}
	return plan
}
