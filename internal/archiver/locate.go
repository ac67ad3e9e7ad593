package archiver

import (
	"context"
	"os/exec"
)

// DefaultCandidates are probed in order by Locate.
var DefaultCandidates = []string{"7z", "/usr/local/bin/7z", "/opt/local/bin/7z"}

// Locate runs each candidate without arguments and returns the first one that
// exits with status 0. ok is false when none does.
func Locate(ctx context.Context, candidates []string) (path string, ok bool) {
	if candidates == nil {
		candidates = DefaultCandidates
	}
	for _, candidate := range candidates {
		if probe(ctx, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func probe(ctx context.Context, candidate string) bool {
	if candidate == "" {
		return false
	}
	cmd := exec.CommandContext(ctx, candidate)
	return cmd.Run() == nil
}
