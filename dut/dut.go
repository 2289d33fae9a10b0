package dut

import (
	"strconv"
	"strings"

	"github.com/jisotalo/iec-61131-3/dut/internal/token"
	"github.com/jisotalo/iec-61131-3/errors"
)

// Kind classifies a data-type unit.
type Kind uint8

const (
	KindStruct Kind = iota
	KindUnion
	KindEnum
	KindAlias
)

var kindNames = [...]string{
	KindStruct: "struct",
	KindUnion:  "union",
	KindEnum:   "enum",
	KindAlias:  "alias",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Member is one struct or union member with its raw, still unresolved type
// text (e.g. "ARRAY[0..9] OF INT").
type Member struct {
	Name     string
	TypeText string
}

// EnumMember is one enum definition. Omitted values are already resolved
// here during extraction: previous value + 1, or 0 for the first member.
type EnumMember struct {
	Name  string
	Value int64
}

// Unit is a single named TYPE declaration extracted from source text.
// Type names inside it are raw text; the resolver links them to schema
// nodes.
type Unit struct {
	Name        string
	Kind        Kind
	Members     []Member     // struct, union
	EnumMembers []EnumMember // enum
	BackingText string       // enum backing type, "" for the default
	AliasText   string       // alias target type text
	Line        int
}

type extractor struct {
	tokens []token.Token
	pos    int
}

// Extract tokenizes declaration source and returns one Unit per
// TYPE ... END_TYPE block, in source order. It performs no type
// resolution.
func Extract(source string) ([]*Unit, error) {
	e := &extractor{
		tokens: token.Tokenize(source),
	}

	var units []*Unit
	for e.peek() != nil {
		u, err := e.parseUnit()
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func (e *extractor) peek() *token.Token {
	if e.pos >= len(e.tokens) {
		return nil
	}
	return &e.tokens[e.pos]
}

func (e *extractor) next() *token.Token {
	if e.pos >= len(e.tokens) {
		return nil
	}
	t := &e.tokens[e.pos]
	e.pos++
	return t
}

func (e *extractor) expectSymbol(sym, typeName string) (*token.Token, error) {
	t := e.next()
	if t == nil {
		return nil, errors.MalformedDeclaration(typeName, "unexpected end of input, expected "+strconv.Quote(sym))
	}
	if t.Type != token.Symbol || t.Value != sym {
		return nil, errors.MalformedDeclaration(typeName, "line "+strconv.Itoa(t.Line)+": expected "+strconv.Quote(sym)+", got "+strconv.Quote(t.Value))
	}
	return t, nil
}

func (e *extractor) expectKeyword(word, typeName string) error {
	t := e.next()
	if t == nil {
		return errors.MalformedDeclaration(typeName, "unexpected end of input, expected "+word)
	}
	if t.Type != token.Ident || !strings.EqualFold(t.Value, word) {
		return errors.MalformedDeclaration(typeName, "line "+strconv.Itoa(t.Line)+": expected "+word+", got "+strconv.Quote(t.Value))
	}
	return nil
}

func (e *extractor) skipSemicolons() {
	for t := e.peek(); t != nil && t.Type == token.Symbol && t.Value == ";"; t = e.peek() {
		e.next()
	}
}

func (e *extractor) parseUnit() (*Unit, error) {
	if err := e.expectKeyword("TYPE", ""); err != nil {
		return nil, err
	}
	nameTok := e.next()
	if nameTok == nil || nameTok.Type != token.Ident {
		return nil, errors.MalformedDeclaration("", "TYPE block has no name")
	}
	u := &Unit{Name: nameTok.Value, Line: nameTok.Line}

	if _, err := e.expectSymbol(":", u.Name); err != nil {
		return nil, err
	}

	t := e.peek()
	if t == nil {
		return nil, errors.MalformedDeclaration(u.Name, "unexpected end of input after ':'")
	}

	switch {
	case t.Type == token.Ident && strings.EqualFold(t.Value, "STRUCT"):
		e.next()
		u.Kind = KindStruct
		if err := e.parseMembers(u, "END_STRUCT"); err != nil {
			return nil, err
		}

	case t.Type == token.Ident && strings.EqualFold(t.Value, "UNION"):
		e.next()
		u.Kind = KindUnion
		if err := e.parseMembers(u, "END_UNION"); err != nil {
			return nil, err
		}

	case t.Type == token.Symbol && t.Value == "(":
		e.next()
		u.Kind = KindEnum
		if err := e.parseEnumBody(u); err != nil {
			return nil, err
		}

	default:
		u.Kind = KindAlias
		if err := e.parseAliasBody(u); err != nil {
			return nil, err
		}
	}

	e.skipSemicolons()
	if err := e.expectKeyword("END_TYPE", u.Name); err != nil {
		return nil, err
	}
	return u, nil
}

// parseMembers reads `name : typeText ;` entries until the end keyword.
func (e *extractor) parseMembers(u *Unit, endKeyword string) error {
	for {
		t := e.peek()
		if t == nil {
			return errors.MalformedDeclaration(u.Name, "unterminated block, expected "+endKeyword)
		}
		if t.Type == token.Ident && strings.EqualFold(t.Value, endKeyword) {
			e.next()
			return nil
		}

		nameTok := e.next()
		if nameTok.Type != token.Ident {
			return errors.MalformedDeclaration(u.Name, "line "+strconv.Itoa(nameTok.Line)+": expected member name, got "+strconv.Quote(nameTok.Value))
		}
		if _, err := e.expectSymbol(":", u.Name); err != nil {
			return err
		}

		// the member type is kept as raw text up to the terminating ';'
		start := e.pos
		if e.scanToSemicolon() == nil {
			return errors.MalformedDeclaration(u.Name, "member "+nameTok.Value+" has no terminating ';'")
		}
		typeText := e.typeText(start)
		if typeText == "" {
			return errors.MalformedDeclaration(u.Name, "member "+nameTok.Value+" has no data type")
		}
		u.Members = append(u.Members, Member{Name: nameTok.Value, TypeText: typeText})
	}
}

func (e *extractor) scanToSemicolon() *token.Token {
	for {
		t := e.next()
		if t == nil {
			return nil
		}
		if t.Type == token.Symbol && t.Value == ";" {
			return t
		}
	}
}

// typeText rebuilds raw type text from the tokens between position start and
// the semicolon the extractor just consumed. Working from tokens rather than
// a source slice drops comments and pragmas that sat inside the span; a
// single space marks each gap the source had between adjacent tokens.
func (e *extractor) typeText(start int) string {
	var b strings.Builder
	toks := e.tokens[start : e.pos-1]
	for i, t := range toks {
		if i > 0 && toks[i-1].End != t.Offset {
			b.WriteByte(' ')
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

// parseEnumBody reads `name [:= value]` entries separated by commas, the
// closing ')', an optional backing type, and the terminating ';'.
func (e *extractor) parseEnumBody(u *Unit) error {
	next := int64(0)
	for {
		t := e.next()
		if t == nil {
			return errors.MalformedDeclaration(u.Name, "unterminated enum member list")
		}
		if t.Type == token.Symbol && t.Value == ")" {
			break
		}
		if t.Type != token.Ident {
			return errors.MalformedDeclaration(u.Name, "line "+strconv.Itoa(t.Line)+": expected enum member name, got "+strconv.Quote(t.Value))
		}
		m := EnumMember{Name: t.Value, Value: next}

		if sep := e.peek(); sep != nil && sep.Type == token.Symbol && sep.Value == ":=" {
			e.next()
			valTok := e.next()
			if valTok == nil || valTok.Type != token.Number {
				return errors.MalformedDeclaration(u.Name, "enum member "+m.Name+" has no literal value")
			}
			v, err := parseIntLiteral(valTok.Value)
			if err != nil {
				return errors.MalformedDeclaration(u.Name, "enum member "+m.Name+": "+err.Error())
			}
			m.Value = v
		}
		next = m.Value + 1
		u.EnumMembers = append(u.EnumMembers, m)

		sep := e.next()
		if sep == nil {
			return errors.MalformedDeclaration(u.Name, "unterminated enum member list")
		}
		if sep.Type == token.Symbol && sep.Value == ")" {
			break
		}
		if sep.Type != token.Symbol || sep.Value != "," {
			return errors.MalformedDeclaration(u.Name, "line "+strconv.Itoa(sep.Line)+": expected ',' or ')', got "+strconv.Quote(sep.Value))
		}
	}

	// optional backing type between ')' and ';'
	t := e.peek()
	if t == nil {
		return errors.MalformedDeclaration(u.Name, "enum has no terminating ';'")
	}
	if t.Type == token.Ident {
		start := e.pos
		if e.scanToSemicolon() == nil {
			return errors.MalformedDeclaration(u.Name, "enum has no terminating ';'")
		}
		u.BackingText = e.typeText(start)
		return nil
	}
	if _, err := e.expectSymbol(";", u.Name); err != nil {
		return err
	}
	return nil
}

// parseAliasBody captures the raw target type text up to ';'.
func (e *extractor) parseAliasBody(u *Unit) error {
	if e.peek() == nil {
		return errors.MalformedDeclaration(u.Name, "alias has no target type")
	}
	start := e.pos
	if e.scanToSemicolon() == nil {
		return errors.MalformedDeclaration(u.Name, "alias has no terminating ';'")
	}
	u.AliasText = e.typeText(start)
	if u.AliasText == "" {
		return errors.MalformedDeclaration(u.Name, "alias has no target type")
	}
	return nil
}

// parseIntLiteral parses decimal and based literals (16#FF, 2#1010).
func parseIntLiteral(s string) (int64, error) {
	if base, digits, ok := strings.Cut(s, "#"); ok {
		b, err := strconv.Atoi(base)
		if err != nil {
			return 0, err
		}
		return strconv.ParseInt(strings.ReplaceAll(digits, "_", ""), b, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}
