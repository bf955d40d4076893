// Package watcher monitors Git-internal state files and notifies the TUI to
// refresh. Rather than recursively watching the working tree, it watches the
// handful of paths inside .git that change on meaningful Git operations, so
// it stays cheap on repositories with very large trees.
//
// Watched paths:
//   - .git/index        → staging changes (git add/reset)
//   - .git/HEAD         → branch switches, commits
//   - .git/refs/heads   → local branch updates
//   - .git/refs/remotes → fetch/pull updates
//
// Working-tree edits are picked up on the next manual refresh or on the
// index-change event that staging triggers.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watcher detects relevant Git state changes.
type Event struct{}

// Watch monitors Git-internal paths under gitDir and sends Event values on
// the returned channel. Rapid bursts are coalesced via the debounce window.
//
// gitDir should be the absolute path to the .git directory (handles worktrees
// where .git is a file pointing elsewhere).
//
// Call the returned stop function to tear down the watcher.
func Watch(gitDir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	targets := []string{
		gitDir,                                // catches HEAD, index, MERGE_HEAD etc.
		filepath.Join(gitDir, "refs"),         // catches all ref updates
		filepath.Join(gitDir, "refs/heads"),   // local branch changes
		filepath.Join(gitDir, "refs/remotes"), // fetch/pull updates
	}
	for _, t := range targets {
		if info, statErr := os.Stat(t); statErr == nil && info.IsDir() {
			// Some dirs may not exist yet; non-fatal.
			_ = w.Add(t)
		}
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if shouldIgnore(ev.Name) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for events that should not trigger a refresh.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Git lock files are transient and held mid-operation. Re-invoking git
	// while it holds a lock would fail, so never trigger on these.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// Editor swap/temp files that somehow end up in .git.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	// Fires while a commit message is being typed; nothing to refresh yet.
	if base == "COMMIT_EDITMSG" {
		return true
	}

	if base == "gc.log" || strings.HasPrefix(base, "fsmonitor") {
		return true
	}

	return false
}
