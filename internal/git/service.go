package git

// Service defines the contract for all Git operations the TUI performs.
// Every view depends on this interface, never on exec.Command directly,
// which keeps the model layer testable via fake implementations.
type Service interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string
	Branch() (string, error)
	HeadSummary() (string, error)

	// ── Status & diff ────────────────────────────────────────────────
	Status() (*StatusResult, error)
	Diff(staged bool) (string, error)

	// ── Staging ──────────────────────────────────────────────────────
	Stage(path string) error
	StageAll() error
	Unstage(path string) error
	UnstageAll() error
	// StagePatch stages only the hunk-th hunk (1-based) of the file's
	// unstaged diff; UnstagePatch is the inverse against the index.
	StagePatch(path string, hunk int) error
	UnstagePatch(path string, hunk int) error

	// ── Commits & sync ───────────────────────────────────────────────
	Pull() (string, error)
	Push(force bool) (string, error)
	StashPush() (string, error)
	StashPop() (string, error)

	// ── Branches ─────────────────────────────────────────────────────
	Branches() ([]Branch, error)
	Checkout(name string) (string, error)
	CheckoutNew(name string) (string, error)

	// ── Escape hatch ─────────────────────────────────────────────────
	// Exec runs an arbitrary git command for the `:` prompt and returns
	// its stdout and stderr separately.
	Exec(args []string) (stdout, stderr string, err error)
}
