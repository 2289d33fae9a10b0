package resolver

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jisotalo/iec-61131-3/dut"
	"github.com/jisotalo/iec-61131-3/errors"
	"github.com/jisotalo/iec-61131-3/schema"
)

// Option configures a resolution pass.
type Option func(*options)

type options struct {
	topLevel string
	provided map[string]schema.DataType
}

// WithTopLevel names the declaration whose resolved schema is returned when
// the batch declares several types.
func WithTopLevel(name string) Option {
	return func(o *options) { o.topLevel = name }
}

// WithProvidedTypes supplies externally built schema nodes, consulted only
// when a referenced name matches neither a primitive, string/array syntax,
// nor a declaration in the batch.
func WithProvidedTypes(types map[string]schema.DataType) Option {
	return func(o *options) { o.provided = types }
}

// ResolveTypes extracts all TYPE declarations from source text and links
// them into a schema node graph, returning the top-level type's node.
//
// Declaration order does not matter: a member may reference a type that is
// declared later in the text. Resolution is recursive and memoized, so each
// unit is resolved exactly once however many members reference it.
func ResolveTypes(declarations string, opts ...Option) (schema.DataType, error) {
	units, err := dut.Extract(declarations)
	if err != nil {
		return nil, err
	}
	return ResolveUnits(units, opts...)
}

// ResolveUnits links already extracted units into a schema node graph.
func ResolveUnits(units []*dut.Unit, opts ...Option) (schema.DataType, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	l := &linker{
		entries:  make(map[string]*unitEntry, len(units)),
		provided: make(map[string]schema.DataType, len(o.provided)),
		log:      Logger(),
	}
	for _, u := range units {
		key := strings.ToLower(u.Name)
		if _, dup := l.entries[key]; dup {
			return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
				TypeName(u.Name).Detail("declared more than once").Build()
		}
		l.entries[key] = &unitEntry{unit: u}
		l.order = append(l.order, u.Name)
	}
	for name, t := range o.provided {
		l.provided[strings.ToLower(name)] = t
		l.providedNames = append(l.providedNames, name)
	}

	l.log.Debug("resolving data type units",
		zap.Int("units", len(units)),
		zap.Int("provided", len(o.provided)),
		zap.String("top_level", o.topLevel))

	top, err := l.selectTopLevel(o.topLevel)
	if err != nil {
		return nil, err
	}
	return l.resolveUnit(top)
}

type resolveState uint8

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

type unitEntry struct {
	unit     *dut.Unit
	resolved schema.DataType
	state    resolveState
}

type linker struct {
	entries       map[string]*unitEntry
	provided      map[string]schema.DataType
	order         []string
	providedNames []string
	log           *zap.Logger
}

func (l *linker) selectTopLevel(name string) (*unitEntry, error) {
	if name != "" {
		entry, ok := l.entries[strings.ToLower(name)]
		if !ok {
			return nil, errors.UnknownTopLevel(name, l.order)
		}
		return entry, nil
	}
	switch len(l.order) {
	case 1:
		return l.entries[strings.ToLower(l.order[0])], nil
	case 0:
		return nil, errors.InvalidInput(errors.PhaseResolve, nil, "no TYPE declarations in input")
	default:
		return nil, errors.AmbiguousTopLevel(l.order)
	}
}

// resolveUnit converts one unit into a schema node, resolving member types
// recursively. Results are cached on the entry so shared and forward
// references resolve each unit exactly once; re-entering an unfinished
// resolution means the declarations have no finite byte layout.
func (l *linker) resolveUnit(entry *unitEntry) (schema.DataType, error) {
	switch entry.state {
	case stateResolved:
		return entry.resolved, nil
	case stateResolving:
		return nil, errors.CyclicDeclaration(entry.unit.Name)
	}
	entry.state = stateResolving

	var (
		node schema.DataType
		err  error
	)
	u := entry.unit
	switch u.Kind {
	case dut.KindStruct:
		node, err = l.resolveMembers(u, func(ms []schema.Member) (schema.DataType, error) {
			return schema.NewStruct(ms)
		})
	case dut.KindUnion:
		node, err = l.resolveMembers(u, func(ms []schema.Member) (schema.DataType, error) {
			return schema.NewUnion(ms)
		})
	case dut.KindEnum:
		node, err = l.resolveEnum(u)
	case dut.KindAlias:
		node, err = l.resolveTypeText(u.AliasText)
		if err != nil {
			err = memberContext(err, u.Name, "")
		}
	default:
		err = errors.MalformedDeclaration(u.Name, "unknown unit kind")
	}
	if err != nil {
		return nil, err
	}

	entry.resolved = node
	entry.state = stateResolved
	l.log.Debug("resolved data type unit",
		zap.String("name", u.Name),
		zap.Stringer("kind", node.Kind()),
		zap.Int("byte_length", node.ByteLength()))
	return node, nil
}

func (l *linker) resolveMembers(u *dut.Unit, build func([]schema.Member) (schema.DataType, error)) (schema.DataType, error) {
	members := make([]schema.Member, 0, len(u.Members))
	for _, m := range u.Members {
		t, err := l.resolveTypeText(m.TypeText)
		if err != nil {
			return nil, memberContext(err, u.Name, m.Name)
		}
		members = append(members, schema.Member{Name: m.Name, Type: t})
	}
	node, err := build(members)
	if err != nil {
		return nil, memberContext(err, u.Name, "")
	}
	return node, nil
}

func (l *linker) resolveEnum(u *dut.Unit) (schema.DataType, error) {
	var backing *schema.Primitive
	if u.BackingText != "" {
		t, err := l.resolveTypeText(u.BackingText)
		if err != nil {
			return nil, memberContext(err, u.Name, "")
		}
		p, ok := t.(*schema.Primitive)
		if !ok {
			return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
				TypeName(u.Name).
				Detail("enum backing type %q is not a primitive", u.BackingText).
				Build()
		}
		backing = p
	}

	members := make([]schema.EnumMember, len(u.EnumMembers))
	for i, m := range u.EnumMembers {
		members[i] = schema.EnumMember{Name: m.Name, Value: m.Value}
	}
	e, err := schema.NewEnum(members, backing)
	if err != nil {
		return nil, memberContext(err, u.Name, "")
	}
	return e, nil
}

// resolveTypeText resolves raw member type text against, in order: the
// primitive name table, STRING/WSTRING syntax, ARRAY syntax, the other
// units of the batch, and the externally provided type map.
func (l *linker) resolveTypeText(text string) (schema.DataType, error) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ";"))

	if p, ok := lookupPrimitive(text); ok {
		return p, nil
	}

	if t, ok, err := parseStringType(text); ok || err != nil {
		return t, err
	}

	if isArrayType(text) {
		return l.parseArrayType(text)
	}

	if entry, ok := l.entries[strings.ToLower(text)]; ok {
		return l.resolveUnit(entry)
	}

	if t, ok := l.provided[strings.ToLower(text)]; ok {
		l.log.Debug("resolved from provided types", zap.String("name", text))
		return t, nil
	}

	return nil, errors.UnknownDataType(text, l.order, l.providedNames)
}

// parseStringType matches STRING and WSTRING declarations with an optional
// parenthesized or bracketed length: STRING, STRING(50), STRING[50].
func parseStringType(text string) (schema.DataType, bool, error) {
	word := text
	rest := ""
	if i := strings.IndexAny(text, "([ \t"); i >= 0 {
		word, rest = text[:i], strings.TrimSpace(text[i:])
	}

	wide := false
	switch {
	case strings.EqualFold(word, "STRING"):
	case strings.EqualFold(word, "WSTRING"):
		wide = true
	default:
		return nil, false, nil
	}

	length := schema.DefaultStringLength
	if rest != "" {
		var inner string
		switch {
		case strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")"):
			inner = rest[1 : len(rest)-1]
		case strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]"):
			inner = rest[1 : len(rest)-1]
		default:
			return nil, false, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
				TypeName(text).Detail("malformed string length").Build()
		}
		n, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil || n < 0 {
			return nil, false, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
				TypeName(text).Detail("string length must be a literal non-negative integer").Build()
		}
		length = n
	}

	if wide {
		return schema.NewWString(length), true, nil
	}
	return schema.NewString(length), true, nil
}

func isArrayType(text string) bool {
	if len(text) < 5 || !strings.EqualFold(text[:5], "ARRAY") {
		return false
	}
	rest := strings.TrimSpace(text[5:])
	return strings.HasPrefix(rest, "[")
}

// parseArrayType parses `ARRAY[lo..hi{,lo..hi}] OF elementType`, computing
// each dimension as hi-lo+1 and recursing into the element type text.
func (l *linker) parseArrayType(text string) (schema.DataType, error) {
	rest := strings.TrimSpace(text[5:])
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
			TypeName(text).Detail("unterminated array dimensions").Build()
	}

	var dims []int
	for _, part := range strings.Split(rest[1:end], ",") {
		lo, hi, ok := strings.Cut(part, "..")
		if !ok {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
				TypeName(text).Detail("array dimension %q is not of the form lo..hi", strings.TrimSpace(part)).Build()
		}
		loN, err1 := strconv.Atoi(strings.TrimSpace(lo))
		hiN, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
				TypeName(text).Detail("array bounds must be literal integers").Build()
		}
		if hiN < loN {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
				TypeName(text).Detail("array bound %d..%d is empty", loN, hiN).Build()
		}
		dims = append(dims, hiN-loN+1)
	}

	after := strings.TrimSpace(rest[end+1:])
	if len(after) < 2 || !strings.EqualFold(after[:2], "OF") {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
			TypeName(text).Detail("array type without OF clause").Build()
	}
	elemText := strings.TrimSpace(after[2:])
	if elemText == "" {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
			TypeName(text).Detail("array type without element type").Build()
	}

	elem, err := l.resolveTypeText(elemText)
	if err != nil {
		return nil, err
	}
	return schema.NewArray(elem, dims)
}

// memberContext prefixes a unit (and member) name onto a structured error's
// path so failures deep in a declaration batch stay diagnosable.
func memberContext(err error, unitName, memberName string) error {
	e, ok := err.(*errors.Error)
	if !ok {
		return err
	}
	prefix := []string{unitName}
	if memberName != "" {
		prefix = append(prefix, memberName)
	}
	e.Path = append(prefix, e.Path...)
	return e
}
