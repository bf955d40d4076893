// Package highlight colours diff line content per source language.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders source lines as ANSI-coloured text. Lexers are matched
// per file path and cached, since a diff view highlights many lines of the
// same file in a row.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter

	lexerPath string
	lexer     chroma.Lexer
}

// New creates a highlighter using the given chroma style name.
// An unknown name falls back to chroma's default style.
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: formatters.Get("terminal256"),
	}
}

// Line highlights a single line of the named file. Unknown file types and
// tokenisation failures return the line unchanged.
func (h *Highlighter) Line(path, line string) string {
	lexer := h.lexerFor(path)
	if lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return line
	}
	// Chroma appends the newline it tokenised; the caller owns line breaks.
	return strings.TrimRight(sb.String(), "\n")
}

func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	if path == h.lexerPath {
		return h.lexer
	}
	lexer := lexers.Match(path)
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	h.lexerPath = path
	h.lexer = lexer
	return lexer
}
