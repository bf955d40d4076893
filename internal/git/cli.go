package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// cmdTimeout is the maximum duration any single git command may run.
// Prevents hangs on huge repos or network operations.
const cmdTimeout = 30 * time.Second

// CLIService implements Service by shelling out to the git CLI.
// Optimised for large repos:
//   - GIT_OPTIONAL_LOCKS=0 on all read commands (no lock contention)
//   - Context-based timeouts prevent hangs
//   - Stdout/Stderr separated — stderr noise doesn't corrupt output
type CLIService struct {
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
}

// Compile-time check that CLIService implements Service.
var _ Service = (*CLIService)(nil)

// NewCLIService opens a Git repository at the given path.
func NewCLIService(path string) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	topLevel, _, err := runGit(abs, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	gitDir, _, err := runGit(abs, nil, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(strings.TrimSpace(topLevel), gd)
	}
	return &CLIService{
		root:   strings.TrimSpace(topLevel),
		gitDir: gd,
	}, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
// GIT_OPTIONAL_LOCKS=0 prevents git from acquiring optional locks,
// which matters in large repos where lock contention stalls readers.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// run executes a git command at the repo root with read-optimised env.
func (s *CLIService) run(args ...string) (string, error) {
	stdout, _, err := runGit(s.root, readEnv, args...)
	return stdout, err
}

// runWrite executes a write git command (no optional-locks override).
func (s *CLIService) runWrite(args ...string) (string, error) {
	stdout, _, err := runGit(s.root, nil, args...)
	return stdout, err
}

// runGit executes a git command with a context timeout.
// Stdout and stderr are captured separately; both must decode as UTF-8 —
// the terminal can only render valid text, so a binary-spewing command is
// surfaced as an error naming the offending stream.
func runGit(dir string, extraEnv []string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	// Inherit environment, add extras.
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if err := checkUTF8(stdout.Bytes(), stderr.Bytes(), args); err != nil {
		return "", "", err
	}
	if runErr != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, runErr)
	}
	return stdout.String(), stderr.String(), nil
}

// checkUTF8 rejects non-UTF-8 output from either stream.
func checkUTF8(stdout, stderr []byte, args []string) error {
	if !utf8.Valid(stdout) {
		return fmt.Errorf("git %s: stdout is not valid utf-8", strings.Join(args, " "))
	}
	if !utf8.Valid(stderr) {
		return fmt.Errorf("git %s: stderr is not valid utf-8", strings.Join(args, " "))
	}
	return nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the path to the .git directory.
func (s *CLIService) GitDir() string { return s.gitDir }

// Branch returns the current branch name, falling back to the short commit
// hash when HEAD is detached.
func (s *CLIService) Branch() (string, error) {
	// Fast path: read symbolic ref directly, no optional locks.
	ref, err := s.run("symbolic-ref", "--short", "HEAD")
	if err != nil {
		hash, hashErr := s.run("rev-parse", "--short", "HEAD")
		if hashErr != nil {
			return "", fmt.Errorf("getting HEAD: %w", err)
		}
		return strings.TrimSpace(hash), nil
	}
	return strings.TrimSpace(ref), nil
}

// Read-command argument lists. Lock suppression comes from readEnv —
// git accepts --no-optional-locks only before the subcommand, so the flag
// must never appear in these.
var (
	statusArgs      = []string{"status", "--porcelain=v1", "-z", "--untracked-files=normal"}
	headSummaryArgs = []string{"log", "-1", "--format=%h %s"}
)

func diffArgs(staged bool) []string {
	args := []string{"diff", "--color=never", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	return args
}

// HeadSummary returns the most recent commit's abbreviated hash and subject.
// An unborn branch (no commits yet) yields an empty string, not an error.
func (s *CLIService) HeadSummary() (string, error) {
	out, err := s.run(headSummaryArgs...)
	if err != nil {
		if strings.Contains(err.Error(), "does not have any commits") {
			return "", nil
		}
		return "", fmt.Errorf("getting HEAD summary: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ── Status & diff ───────────────────────────────────────────────────────────

// Status returns the current working tree status.
func (s *CLIService) Status() (*StatusResult, error) {
	// --porcelain=v1 -z: machine-parseable, NUL-delimited.
	out, err := s.run(statusArgs...)
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	return ParseStatusOutput(out), nil
}

// Diff returns the worktree diff, or the index diff when staged is true.
func (s *CLIService) Diff(staged bool) (string, error) {
	return s.run(diffArgs(staged)...)
}

// ── Staging ─────────────────────────────────────────────────────────────────

// Stage stages the given path.
func (s *CLIService) Stage(path string) error {
	_, err := s.runWrite("add", "--", path)
	return err
}

// StageAll stages all changes.
func (s *CLIService) StageAll() error { _, err := s.runWrite("add", "-A"); return err }

// Unstage unstages the given path.
func (s *CLIService) Unstage(path string) error {
	_, err := s.runWrite("reset", "HEAD", "--", path)
	return err
}

// UnstageAll unstages all changes.
func (s *CLIService) UnstageAll() error { _, err := s.runWrite("reset", "HEAD"); return err }

// StagePatch stages only the hunk-th hunk (1-based) of the file's unstaged
// diff by scripting `git add --patch`.
func (s *CLIService) StagePatch(path string, hunk int) error {
	return s.runPatch(hunk, "add", "--patch", "--", path)
}

// UnstagePatch unstages only the hunk-th hunk (1-based) of the file's staged
// diff by scripting `git reset --patch`.
func (s *CLIService) UnstagePatch(path string, hunk int) error {
	return s.runPatch(hunk, "reset", "--patch", "--", path)
}

// runPatch drives git's interactive patch prompt: answer "n" for every hunk
// before the target, "y" for the target, then close stdin so git skips the
// rest. The feed runs on its own goroutine — git may exit before reading all
// answers, and a blocked pipe write must not deadlock the wait.
func (s *CLIService) runPatch(hunk int, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.root

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	go func() {
		defer stdin.Close()
		for i := 1; i < hunk; i++ {
			if _, err := io.WriteString(stdin, "n\n"); err != nil {
				return
			}
		}
		_, _ = io.WriteString(stdin, "y\n")
	}()

	if err := cmd.Wait(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return nil
}

// ── Commits & sync ──────────────────────────────────────────────────────────

// Pull pulls from the configured upstream.
func (s *CLIService) Pull() (string, error) { return s.runWrite("pull") }

// Push pushes to the configured upstream, with --force-with-lease when force
// is set.
func (s *CLIService) Push(force bool) (string, error) {
	args := []string{"push"}
	if force {
		args = append(args, "--force-with-lease")
	}
	return s.runWrite(args...)
}

// StashPush stashes the working tree.
func (s *CLIService) StashPush() (string, error) { return s.runWrite("stash", "push") }

// StashPop pops the most recent stash entry.
func (s *CLIService) StashPop() (string, error) { return s.runWrite("stash", "pop") }

// ── Branches ────────────────────────────────────────────────────────────────

const branchFormat = "%(HEAD)%00%(refname:short)%00%(objectname:short)%00%(subject)"

// Branches returns all local branches.
func (s *CLIService) Branches() ([]Branch, error) {
	// --sort=-committerdate: most recently active branches first.
	out, err := s.run("branch", "--format="+branchFormat, "--sort=-committerdate")
	if err != nil {
		return nil, err
	}
	return ParseBranchOutput(out), nil
}

// Checkout switches to the given branch.
func (s *CLIService) Checkout(name string) (string, error) {
	return s.runWrite("checkout", name)
}

// CheckoutNew creates and switches to a new branch.
func (s *CLIService) CheckoutNew(name string) (string, error) {
	return s.runWrite("checkout", "-b", name)
}

// ── Escape hatch ────────────────────────────────────────────────────────────

// Exec runs an arbitrary git command and returns both output streams.
func (s *CLIService) Exec(args []string) (string, string, error) {
	return runGit(s.root, nil, args...)
}
