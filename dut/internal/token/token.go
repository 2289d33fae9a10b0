package token

type Type int

const (
	Ident Type = iota
	Number
	Symbol
)

func (t Type) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Symbol:
		return "symbol"
	}
	return "unknown"
}

// Token is one lexical unit of the declaration language. Offset and End are
// byte positions into the original source, so callers can tell adjacent
// tokens from tokens separated by whitespace or comments.
type Token struct {
	Value  string
	Type   Type
	Line   int
	Offset int
	End    int
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// Tokenize splits declaration source into tokens. Whitespace, `//` line
// comments, nested `(* *)` block comments and `{...}` pragmas produce no
// tokens.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1

	for i := 0; i < len(input); i++ {
		c := input[i]

		if c == '\n' {
			line++
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}

		// Line comment
		if c == '/' && i+1 < len(input) && input[i+1] == '/' {
			for i < len(input) && input[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Pragma, e.g. {attribute 'pack_mode' := '1'}
		if c == '{' {
			for i < len(input) && input[i] != '}' {
				if input[i] == '\n' {
					line++
				}
				i++
			}
			continue
		}

		// Block comment or left paren
		if c == '(' {
			if i+1 < len(input) && input[i+1] == '*' {
				depth := 1
				i += 2
				for i < len(input) && depth > 0 {
					if input[i] == '(' && i+1 < len(input) && input[i+1] == '*' {
						depth++
						i++
					} else if input[i] == '*' && i+1 < len(input) && input[i+1] == ')' {
						depth--
						i++
					} else if input[i] == '\n' {
						line++
					}
					i++
				}
				i--
				continue
			}
			tokens = append(tokens, Token{"(", Symbol, line, i, i + 1})
			continue
		}

		// Two-character symbols
		if c == ':' && i+1 < len(input) && input[i+1] == '=' {
			tokens = append(tokens, Token{":=", Symbol, line, i, i + 2})
			i++
			continue
		}
		if c == '.' && i+1 < len(input) && input[i+1] == '.' {
			tokens = append(tokens, Token{"..", Symbol, line, i, i + 2})
			i++
			continue
		}

		switch c {
		case ')', '[', ']', ':', ';', ',', '=', '.':
			tokens = append(tokens, Token{string(c), Symbol, line, i, i + 1})
			continue
		}

		// Number, optionally signed, optionally based (16#FF, 2#1010)
		if isDigit(c) || (c == '-' || c == '+') && i+1 < len(input) && isDigit(input[i+1]) {
			start := i
			if c == '-' || c == '+' {
				i++
			}
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i < len(input) && input[i] == '#' {
				i++
				for i < len(input) && (isHexDigit(input[i]) || input[i] == '_') {
					i++
				}
			}
			tokens = append(tokens, Token{input[start:i], Number, line, start, i})
			i--
			continue
		}

		// Identifier or keyword
		if isLetter(c) {
			start := i
			for i < len(input) && (isLetter(input[i]) || isDigit(input[i])) {
				i++
			}
			tokens = append(tokens, Token{input[start:i], Ident, line, start, i})
			i--
			continue
		}
	}

	return tokens
}
