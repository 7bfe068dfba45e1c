package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter tokenises SQL text using chroma and renders it with lipgloss
// styles from a Style palette. It is used on generated DDL.
type Highlighter struct {
	lexer chroma.Lexer
}

// NewHighlighter creates a Highlighter that uses the PostgreSQL lexer. If
// the PostgreSQL lexer is unavailable it falls back to the generic SQL
// lexer.
func NewHighlighter() *Highlighter {
	l := lexers.Get("PostgreSQL")
	if l == nil {
		l = lexers.Get("SQL")
	}
	if l == nil {
		l = lexers.Fallback
	}
	// Coalesce runs of identical token types so the loop below processes
	// fewer, larger chunks.
	l = chroma.Coalesce(l)

	return &Highlighter{lexer: l}
}

// Highlight tokenises sql and returns a string where each token is styled
// with the corresponding lipgloss style from the palette. Newlines are
// preserved so multi-line statements render correctly.
func (h *Highlighter) Highlight(sql string, st *Style) string {
	if st == nil {
		return sql
	}

	iter, err := h.lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql) * 2) // rough estimate

	for _, tok := range iter.Tokens() {
		value := tok.Value
		if value == "" {
			continue
		}

		style, ok := styleFor(tok.Type, st)
		if !ok {
			b.WriteString(value)
			continue
		}

		// Handle tokens that contain newlines: style each segment
		// individually so that a newline is always emitted as-is.
		if strings.Contains(value, "\n") {
			lines := strings.Split(value, "\n")
			for i, line := range lines {
				if line != "" {
					b.WriteString(style.Render(line))
				}
				if i < len(lines)-1 {
					b.WriteByte('\n')
				}
			}
		} else {
			b.WriteString(style.Render(value))
		}
	}

	return b.String()
}

// styleFor maps a chroma token type to the corresponding lipgloss.Style.
// The second return value is false when the token should pass through
// unstyled.
func styleFor(tt chroma.TokenType, st *Style) (lipgloss.Style, bool) {
	switch {
	// KeywordType is a subtype of Keyword, so check it first to give SQL
	// types (e.g. INT, VARCHAR) their own colour.
	case tt == chroma.KeywordType:
		return st.SQLType, true
	case isKeyword(tt):
		return st.SQLKeyword, true
	case isString(tt):
		return st.SQLString, true
	case isNumber(tt):
		return st.SQLNumber, true
	case isComment(tt):
		return st.SQLComment, true
	case tt == chroma.Operator || tt == chroma.OperatorWord:
		return st.SQLOperator, true
	default:
		return lipgloss.Style{}, false
	}
}

func isKeyword(tt chroma.TokenType) bool {
	return tt == chroma.Keyword ||
		tt == chroma.KeywordConstant ||
		tt == chroma.KeywordDeclaration ||
		tt == chroma.KeywordNamespace ||
		tt == chroma.KeywordPseudo ||
		tt == chroma.KeywordReserved ||
		tt == chroma.KeywordType
}

func isString(tt chroma.TokenType) bool {
	return tt == chroma.LiteralString ||
		tt == chroma.LiteralStringSingle ||
		tt == chroma.LiteralStringDouble ||
		tt == chroma.LiteralStringBacktick ||
		tt == chroma.LiteralStringEscape ||
		tt == chroma.LiteralStringOther
}

func isNumber(tt chroma.TokenType) bool {
	return tt == chroma.LiteralNumber ||
		tt == chroma.LiteralNumberFloat ||
		tt == chroma.LiteralNumberHex ||
		tt == chroma.LiteralNumberInteger ||
		tt == chroma.LiteralNumberOct
}

func isComment(tt chroma.TokenType) bool {
	return tt == chroma.Comment ||
		tt == chroma.CommentMultiline ||
		tt == chroma.CommentSingle ||
		tt == chroma.CommentSpecial
}
