package git

import "strings"

// ── Status parsing ──────────────────────────────────────────────────────────

// ParseStatusOutput parses `git status --porcelain=v1 -z`.
// NUL-delimited scanning avoids allocating a massive []string for repos
// with thousands of changed files.
func ParseStatusOutput(out string) *StatusResult {
	result := &StatusResult{}
	if len(out) == 0 {
		return result
	}

	result.Untracked = make([]FileStatus, 0, 16)
	result.Unstaged = make([]FileStatus, 0, 32)
	result.Staged = make([]FileStatus, 0, 32)

	for len(out) > 0 {
		nul := strings.IndexByte(out, '\x00')
		var entry string
		if nul < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:nul]
			out = out[nul+1:]
		}
		if len(entry) < 4 {
			continue
		}

		staging := StatusCode(entry[0])
		worktree := StatusCode(entry[1])
		path := entry[3:]

		fs := FileStatus{Staging: staging, Worktree: worktree, Path: path}

		// Renames/copies have an extra NUL-separated entry for the original path.
		if staging == StatusRenamed || staging == StatusCopied ||
			worktree == StatusRenamed || worktree == StatusCopied {
			nul2 := strings.IndexByte(out, '\x00')
			if nul2 < 0 {
				fs.OrigPath = out
				out = ""
			} else {
				fs.OrigPath = out[:nul2]
				out = out[nul2+1:]
			}
		}

		if staging == StatusUntracked && worktree == StatusUntracked {
			result.Untracked = append(result.Untracked, fs)
			continue
		}
		if staging != StatusUnmodified && staging != StatusUntracked {
			result.Staged = append(result.Staged, fs)
		}
		if worktree != StatusUnmodified && worktree != StatusUntracked {
			result.Unstaged = append(result.Unstaged, fs)
		}
	}
	return result
}

// ── Branch parsing ──────────────────────────────────────────────────────────

// ParseBranchOutput parses `git branch --format=...` (see branchFormat).
func ParseBranchOutput(out string) []Branch {
	if len(out) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	branches := make([]Branch, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\x00", 4)
		if len(parts) < 4 {
			continue
		}
		branches = append(branches, Branch{
			IsCurrent: strings.TrimSpace(parts[0]) == "*",
			Name:      strings.TrimSpace(parts[1]),
			Hash:      strings.TrimSpace(parts[2]),
			Subject:   strings.TrimSpace(parts[3]),
		})
	}
	return branches
}
