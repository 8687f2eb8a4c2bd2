package lexer

import (
	"github.com/funvibe/tackc/internal/token"
)

// TokenStream buffers lexer output so the parser can look ahead.
type TokenStream struct {
	lexer  *Lexer
	buffer []token.Token
}

func NewTokenStream(l *Lexer) *TokenStream {
	return &TokenStream{lexer: l}
}

// NextToken returns the next token, draining the lookahead buffer first.
func (ts *TokenStream) NextToken() token.Token {
	if len(ts.buffer) > 0 {
		tok := ts.buffer[0]
		ts.buffer = ts.buffer[1:]
		return tok
	}
	return ts.lexer.NextToken()
}

// Peek returns the n-th upcoming token (1-based) without consuming it.
func (ts *TokenStream) Peek(n int) token.Token {
	for len(ts.buffer) < n {
		ts.buffer = append(ts.buffer, ts.lexer.NextToken())
	}
	return ts.buffer[n-1]
}

// All drains the stream up to and including EOF.
func (ts *TokenStream) All() []token.Token {
	var toks []token.Token
	for {
		tok := ts.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}
