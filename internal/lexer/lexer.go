package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/tackc/internal/token"
)

type Lexer struct {
	input        string
	file         string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	return NewFile("", input)
}

// NewFile creates a lexer whose tokens carry file in their location.
func NewFile(file, input string) *Lexer {
	l := &Lexer{input: input, file: file, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.EQ)
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case ':':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.COLON_EQ)
		} else {
			tok = l.newToken(token.COLON)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.NOT_EQ)
		} else {
			tok = l.newToken(token.BANG)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.LTE)
		} else {
			tok = l.newToken(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.GTE)
		} else {
			tok = l.newToken(token.GT)
		}
	case '-':
		if l.peekChar() == '>' {
			tok = l.twoCharToken(token.ARROW)
		} else {
			tok = l.newToken(token.MINUS)
		}
	case '&':
		if l.peekChar() == '&' {
			tok = l.twoCharToken(token.AND)
		} else {
			tok = l.newToken(token.ILLEGAL)
		}
	case '|':
		if l.peekChar() == '|' {
			tok = l.twoCharToken(token.OR)
		} else {
			tok = l.newToken(token.ILLEGAL)
		}
	case '+':
		tok = l.newToken(token.PLUS)
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '/':
		tok = l.newToken(token.SLASH)
	case '%':
		tok = l.newToken(token.PERCENT)
	case '.':
		tok = l.newToken(token.DOT)
	case ',':
		tok = l.newToken(token.COMMA)
	case ';':
		tok = l.newToken(token.SEMICOLON)
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case '[':
		tok = l.newToken(token.LBRACKET)
	case ']':
		tok = l.newToken(token.RBRACKET)
	case '"':
		return l.readString()
	case 0:
		tok = token.Token{Type: token.EOF, File: l.file, Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			startLine, startCol := l.line, l.column
			ident := l.readIdentifier()
			return token.Token{
				Type:    token.LookupIdent(ident),
				Lexeme:  ident,
				Literal: ident,
				File:    l.file,
				Line:    startLine,
				Column:  startCol,
			}
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

// readString consumes a double-quoted string. Lexeme keeps the quotes
// and escapes as written; Literal holds the decoded text.
func (l *Lexer) readString() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	var sb strings.Builder
	unterminated := func() token.Token {
		end := l.position
		if end > len(l.input) {
			end = len(l.input)
		}
		return token.Token{
			Type:    token.ILLEGAL,
			Lexeme:  l.input[position:end],
			Literal: "unterminated string",
			File:    l.file,
			Line:    startLine,
			Column:  startCol,
		}
	}
	for {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			return unterminated()
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				return unterminated()
			}
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteByte('\\')
				sb.WriteRune(l.ch)
			}
			continue
		}
		sb.WriteRune(l.ch)
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[position:l.position],
		Literal: sb.String(),
		File:    l.file,
		Line:    startLine,
		Column:  startCol,
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[position:l.position]
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "integer literal out of range", File: l.file, Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: value, File: l.file, Line: startLine, Column: startCol}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) newToken(tokenType token.TokenType) token.Token {
	lexeme := string(l.ch)
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, File: l.file, Line: l.line, Column: l.column}
}

// twoCharToken builds a token from the current and next char, leaving
// the lexer on the second one.
func (l *Lexer) twoCharToken(tokenType token.TokenType) token.Token {
	line, col := l.line, l.column
	first := l.ch
	l.readChar()
	lexeme := string(first) + string(l.ch)
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, File: l.file, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}
