package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseExtract Phase = "extract" // declaration text to unit records
	PhaseResolve Phase = "resolve" // unit records to schema nodes
	PhaseEncode  Phase = "encode"  // value tree to bytes
	PhaseDecode  Phase = "decode"  // bytes to value tree
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedDeclaration Kind = "malformed_declaration"
	KindAmbiguousTopLevel    Kind = "ambiguous_top_level"
	KindUnknownTopLevel      Kind = "unknown_top_level"
	KindUnknownDataType      Kind = "unknown_data_type"
	KindUnknownEnumMember    Kind = "unknown_enum_member"
	KindInvalidEnumInput     Kind = "invalid_enum_input"
	KindInvalidStructMember  Kind = "invalid_struct_member"
	KindCyclicDeclaration    Kind = "cyclic_declaration"
	KindInvalidInput         Kind = "invalid_input"
	KindOutOfBounds          Kind = "out_of_bounds"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.TypeName != "" {
		b.WriteString(": type ")
		b.WriteString(e.TypeName)
	}

	if e.Detail != "" {
		if e.TypeName != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// TypeName sets the data type name involved
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedDeclaration creates an extraction error for a TYPE block that
// cannot be classified
func MalformedDeclaration(typeName, detail string) *Error {
	return &Error{
		Phase:    PhaseExtract,
		Kind:     KindMalformedDeclaration,
		TypeName: typeName,
		Detail:   detail,
	}
}

// AmbiguousTopLevel is returned when a batch declares several units and the
// caller named none of them
func AmbiguousTopLevel(candidates []string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindAmbiguousTopLevel,
		Detail: fmt.Sprintf("multiple data types declared (%s), top-level name required", strings.Join(candidates, ", ")),
	}
}

// UnknownTopLevel is returned when the named top-level type is absent from
// the batch
func UnknownTopLevel(name string, candidates []string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindUnknownTopLevel,
		TypeName: name,
		Detail:   fmt.Sprintf("not declared in batch (declared: %s)", strings.Join(candidates, ", ")),
	}
}

// UnknownDataType is returned when a referenced type name resolves to
// nothing, listing both locally declared and externally provided candidates
func UnknownDataType(name string, local, provided []string) *Error {
	detail := fmt.Sprintf("declared types: [%s]", strings.Join(local, ", "))
	if len(provided) > 0 {
		detail += fmt.Sprintf(", provided types: [%s]", strings.Join(provided, ", "))
	}
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindUnknownDataType,
		TypeName: name,
		Detail:   detail,
	}
}

// UnknownEnumMember is returned when a symbolic enum input matches no
// declared member
func UnknownEnumMember(path []string, name string, declared []string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnknownEnumMember,
		Path:   path,
		Detail: fmt.Sprintf("member %q not found (declared: %s)", name, strings.Join(declared, ", ")),
		Value:  name,
	}
}

// InvalidEnumInput is returned when an enum input is neither a member name,
// a number, nor a name/value pair
func InvalidEnumInput(path []string, value any) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidEnumInput,
		Path:   path,
		Detail: fmt.Sprintf("cannot encode %T as enum", value),
		Value:  value,
	}
}

// InvalidStructMember is returned when a struct or union child is not a
// valid schema node
func InvalidStructMember(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindInvalidStructMember,
		Path:   path,
		Detail: detail,
	}
}

// CyclicDeclaration is returned when resolution re-enters a unit that is
// already being resolved
func CyclicDeclaration(name string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindCyclicDeclaration,
		TypeName: name,
		Detail:   "type refers to itself with no finite byte layout",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error for a too-short byte buffer
func OutOfBounds(path []string, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
		Value:  have,
	}
}
