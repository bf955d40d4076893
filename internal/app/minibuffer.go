package app

import "strings"

// MessageKind distinguishes informational output from failures in the
// minibuffer at the bottom of the screen.
type MessageKind int

const (
	// MessageNote is plain output, e.g. a command's stdout.
	MessageNote MessageKind = iota
	// MessageError is rendered in the error colour, e.g. stderr or a failed
	// operation.
	MessageError
)

// Message is one entry on the minibuffer stack.
type Message struct {
	Text string
	Kind MessageKind
}

// maxMessages bounds the stack; a runaway command cannot grow it without
// limit. The oldest entries are dropped first.
const maxMessages = 32

// Minibuffer accumulates messages to show one at a time at the bottom of the
// screen, plus the input histories for the `:` and `!` prompts.
type Minibuffer struct {
	messages []Message

	gitHistory   []string
	shellHistory []string
}

// Push adds a message to the stack. Empty messages are dropped so commands
// with no output stay silent.
func (mb *Minibuffer) Push(text string, kind MessageKind) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	mb.messages = append(mb.messages, Message{Text: text, Kind: kind})
	if len(mb.messages) > maxMessages {
		mb.messages = mb.messages[len(mb.messages)-maxMessages:]
	}
}

// PushOutput pushes a command's streams: stdout as a note, stderr as an
// error. Either may be empty.
func (mb *Minibuffer) PushOutput(stdout, stderr string) {
	mb.Push(stdout, MessageNote)
	mb.Push(stderr, MessageError)
}

// Pop removes and returns the most recent message.
func (mb *Minibuffer) Pop() (Message, bool) {
	if len(mb.messages) == 0 {
		return Message{}, false
	}
	msg := mb.messages[len(mb.messages)-1]
	mb.messages = mb.messages[:len(mb.messages)-1]
	return msg, true
}

// Peek returns the most recent message without removing it.
func (mb *Minibuffer) Peek() (Message, bool) {
	if len(mb.messages) == 0 {
		return Message{}, false
	}
	return mb.messages[len(mb.messages)-1], true
}

// Len returns the number of pending messages.
func (mb *Minibuffer) Len() int { return len(mb.messages) }

// Clear drops all pending messages.
func (mb *Minibuffer) Clear() { mb.messages = mb.messages[:0] }

// historyKind selects which prompt history to record into.
type historyKind int

const (
	historyGit historyKind = iota
	historyShell
)

// Record appends a submitted command to the matching history, skipping
// blanks and immediate duplicates.
func (mb *Minibuffer) Record(kind historyKind, cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	h := mb.history(kind)
	if n := len(*h); n > 0 && (*h)[n-1] == cmd {
		return
	}
	*h = append(*h, cmd)
}

// History returns the recorded commands for a prompt, oldest first.
func (mb *Minibuffer) History(kind historyKind) []string {
	return *mb.history(kind)
}

func (mb *Minibuffer) history(kind historyKind) *[]string {
	if kind == historyShell {
		return &mb.shellHistory
	}
	return &mb.gitHistory
}
