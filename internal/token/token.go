package token

import "fmt"

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	File    string
	Line    int
	Column  int
}

// Location renders the token position as file:line:column.
func (t Token) Location() string {
	file := t.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN    TokenType = "="
	COLON_EQ  TokenType = ":="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	BANG      TokenType = "!"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	PERCENT   TokenType = "%"
	LT        TokenType = "<"
	GT        TokenType = ">"
	LTE       TokenType = "<="
	GTE       TokenType = ">="
	EQ        TokenType = "=="
	NOT_EQ    TokenType = "!="
	AND       TokenType = "&&"
	OR        TokenType = "||"
	ARROW     TokenType = "->"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	FUN    TokenType = "FUN"
	FOR    TokenType = "FOR"
	IN     TokenType = "IN"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	WHILE  TokenType = "WHILE"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	NULL   TokenType = "NULL"
	BOOL   TokenType = "BOOL"
	INT_T  TokenType = "INT_T"
	STR_T  TokenType = "STRING_T"
	VOID_T TokenType = "VOID"
)

var keywords = map[string]TokenType{
	"fun":    FUN,
	"for":    FOR,
	"in":     IN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
	"bool":   BOOL,
	"int":    INT_T,
	"string": STR_T,
	"void":   VOID_T,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
