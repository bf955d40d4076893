package git

// StatusCode represents a single-character Git status indicator from
// porcelain output.
type StatusCode byte

// Git status codes as single-byte indicators.
const (
	StatusUnmodified  StatusCode = ' '
	StatusModified    StatusCode = 'M'
	StatusTypeChanged StatusCode = 'T'
	StatusAdded       StatusCode = 'A'
	StatusDeleted     StatusCode = 'D'
	StatusRenamed     StatusCode = 'R'
	StatusCopied      StatusCode = 'C'
	StatusUnmerged    StatusCode = 'U'
	StatusUntracked   StatusCode = '?'
	StatusIgnored     StatusCode = '!'
)

// String returns the single-character representation.
func (s StatusCode) String() string { return string(s) }

// FileStatus represents the status of a single file in the working tree or index.
type FileStatus struct {
	Staging  StatusCode
	Worktree StatusCode
	Path     string
	OrigPath string // Only set for renames/copies.
}

// StatusResult holds the categorised status of the repository, split the way
// the UI groups it: untracked, then unstaged, then staged.
type StatusResult struct {
	Untracked []FileStatus
	Unstaged  []FileStatus
	Staged    []FileStatus
}

// TotalCount returns the total number of entries across all groups.
func (sr *StatusResult) TotalCount() int {
	return len(sr.Untracked) + len(sr.Unstaged) + len(sr.Staged)
}

// Branch represents a local branch.
type Branch struct {
	Name      string
	IsCurrent bool
	Hash      string
	Subject   string
}
